package analysis

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed record_schema.json
var recordSchema string

// SchemaIssues validates a JSON document against the expected comparison
// shape and returns a description per deviation. The check is advisory:
// the parser accepts partial replies, this only surfaces drift in the model
// output for the logs. An unloadable document reports a single issue.
func SchemaIssues(document string) []string {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(recordSchema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return []string{fmt.Sprintf("validation impossible: %v", err)}
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return issues
}
