// Package export renders an analysis result as an XLSX workbook, one sheet
// per section (summary, each quote, comparison, recommendation).
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mathieu/devis-analyzer/internal/registry"
	"github.com/mathieu/devis-analyzer/internal/types"
)

// sheetWriter appends rows to one sheet, tracking the cursor.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) writeRow(values ...any) error {
	w.row++
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) blank() { w.row++ }

func newSheet(f *excelize.File, name string) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(name, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(name, "B", "F", 40); err != nil {
		return nil, err
	}
	return &sheetWriter{file: f, sheet: name}, nil
}

// BuildComparisonXLSX builds the workbook and returns its bytes. Sections
// missing from the record simply produce no sheet; a degraded record still
// exports its raw text on the summary sheet.
func BuildComparisonXLSX(record *types.AnalysisRecord, verifications map[string]*registry.Verification) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("export: nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummary(f, record); err != nil {
		return nil, err
	}

	for i, devis := range record.QuoteSections() {
		key := fmt.Sprintf("devis_%d", i+1)
		if err := writeQuoteSheet(f, fmt.Sprintf("Devis %d", i+1), devis, verifications[key]); err != nil {
			return nil, err
		}
	}

	if record.Comparaison != nil {
		if err := writeComparison(f, record.Comparaison); err != nil {
			return nil, err
		}
	}
	if record.Recommandation != nil {
		if err := writeRecommendation(f, record.Recommandation); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, record *types.AnalysisRecord) error {
	const name = "Résumé"
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return err
	}
	if err := f.SetColWidth(name, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(name, "B", "B", 90); err != nil {
		return err
	}

	w := &sheetWriter{file: f, sheet: name}
	if err := w.writeRow("Résumé de l'Analyse"); err != nil {
		return err
	}
	w.blank()
	if record.ResumeExecutif != "" {
		if err := w.writeRow("Résumé Exécutif", record.ResumeExecutif); err != nil {
			return err
		}
	}
	if record.ParseFailed() {
		w.blank()
		if err := w.writeRow("Analyse brute", record.AnalyseBrute); err != nil {
			return err
		}
	}
	return nil
}

func writeQuoteSheet(f *excelize.File, name string, devis *types.DevisAnalyse, siretInfo *registry.Verification) error {
	if devis == nil {
		return nil
	}
	w, err := newSheet(f, name)
	if err != nil {
		return err
	}

	if err := w.writeRow(name); err != nil {
		return err
	}
	w.blank()

	if err := w.writeRow("FOURNISSEUR"); err != nil {
		return err
	}
	rows := [][2]string{
		{"Nom", devis.NomFournisseur},
		{"SIRET", devis.Siret},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		if err := w.writeRow(r[0], r[1]); err != nil {
			return err
		}
	}
	w.blank()

	if siretInfo != nil && siretInfo.Valid {
		if err := w.writeRow("VÉRIFICATION SIRET"); err != nil {
			return err
		}
		verified := [][2]string{
			{"Dénomination", siretInfo.Denomination},
			{"Statut", siretInfo.Etat},
			{"Score de confiance", fmt.Sprintf("%d/100", siretInfo.ScoreConfiance)},
			{"Date de création", siretInfo.DateCreation},
			{"Effectif", siretInfo.TrancheEffectifLibelle},
			{"Activité", siretInfo.ActivitePrincipaleLibelle},
			{"Adresse", siretInfo.Adresse},
		}
		for _, r := range verified {
			if r[1] == "" {
				continue
			}
			if err := w.writeRow(r[0], r[1]); err != nil {
				return err
			}
		}
		w.blank()
	}

	if err := w.writeRow("PRIX"); err != nil {
		return err
	}
	prices := [][2]string{
		{"Prix total", devis.PrixTotal},
		{"Prix au m²", devis.PrixM2},
		{"Délais", devis.Delais},
	}
	for _, r := range prices {
		if r[1] == "" {
			continue
		}
		if err := w.writeRow(r[0], r[1]); err != nil {
			return err
		}
	}
	w.blank()

	if devis.Garanties != "" || devis.Assurances != "" {
		if err := w.writeRow("GARANTIES ET ASSURANCES"); err != nil {
			return err
		}
		if devis.Garanties != "" {
			if err := w.writeRow("Garanties", devis.Garanties); err != nil {
				return err
			}
		}
		if devis.Assurances != "" {
			if err := w.writeRow("Assurances", devis.Assurances); err != nil {
				return err
			}
		}
		w.blank()
	}

	if len(devis.Lignes) > 0 {
		if err := w.writeRow("POSTES DE TRAVAUX"); err != nil {
			return err
		}
		if err := w.writeRow("Corps d'état", "Désignation", "Quantité", "Unité", "Prix unitaire", "Total"); err != nil {
			return err
		}
		for _, ligne := range devis.Lignes {
			if err := w.writeRow(
				ligne.CorpsEtat,
				ligne.Designation,
				floatCell(ligne.Quantite),
				ligne.Unite,
				floatCell(ligne.PrixUnitaire),
				floatCell(ligne.Total),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeComparison(f *excelize.File, comp *types.Comparaison) error {
	w, err := newSheet(f, "Comparaison")
	if err != nil {
		return err
	}

	if err := w.writeRow("COMPARAISON"); err != nil {
		return err
	}
	w.blank()

	if comp.DifferencePrix != "" {
		if err := w.writeRow("Différence de prix", comp.DifferencePrix); err != nil {
			return err
		}
	}
	if comp.MeilleurRapportQualitePrix != "" {
		if err := w.writeRow("Meilleur rapport qualité/prix", comp.MeilleurRapportQualitePrix); err != nil {
			return err
		}
	}
	w.blank()

	sections := []struct {
		title string
		items []string
	}{
		{"COMPARAISON PAR CORPS D'ÉTAT", comp.ComparaisonParCorpsEtat},
		{"ALERTES DE CONFORMITÉ", comp.AlertesConformite},
		{"DIFFÉRENCES NOTABLES", comp.DifferencesNotables},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		if err := w.writeRow(s.title); err != nil {
			return err
		}
		for _, item := range s.items {
			if err := w.writeRow(item); err != nil {
				return err
			}
		}
		w.blank()
	}
	return nil
}

func writeRecommendation(f *excelize.File, reco *types.Recommandation) error {
	w, err := newSheet(f, "Recommandation")
	if err != nil {
		return err
	}

	if err := w.writeRow("RECOMMANDATION"); err != nil {
		return err
	}
	w.blank()

	if reco.DevisRecommande != "" {
		if err := w.writeRow("Devis recommandé", reco.DevisRecommande); err != nil {
			return err
		}
	}
	if len(reco.Scores) > 0 {
		w.blank()
		if err := w.writeRow("SCORES"); err != nil {
			return err
		}
		for i := 1; i <= len(reco.Scores); i++ {
			key := fmt.Sprintf("devis_%d", i)
			if score, ok := reco.Scores[key]; ok {
				if err := w.writeRow(fmt.Sprintf("Devis %d", i), score); err != nil {
					return err
				}
			}
		}
	}
	if reco.Justification != "" {
		w.blank()
		if err := w.writeRow("JUSTIFICATION"); err != nil {
			return err
		}
		if err := w.writeRow(reco.Justification); err != nil {
			return err
		}
	}

	sections := []struct {
		title string
		items []string
	}{
		{"POINTS D'ATTENTION", reco.PointsAttention},
		{"POINTS DE NÉGOCIATION", reco.PointsNegociation},
		{"QUESTIONS DE CLARIFICATION", reco.QuestionsClarification},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		w.blank()
		if err := w.writeRow(s.title); err != nil {
			return err
		}
		for _, item := range s.items {
			if err := w.writeRow(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func floatCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
