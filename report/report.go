// Package report generates PDF reports for registered validation results.
// A report has a cover page listing the requested result IDs, followed by
// one page per valid result with the result, model, model instance, test,
// and test instance records.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/framework"
)

// Options controls report generation.
type Options struct {
	// OutDir is where the PDFs are written. Defaults to "./report".
	OutDir string

	// OnlyCombined removes the per-result and cover PDFs after merging,
	// leaving a single combined file.
	OnlyCombined bool
}

// Generator fetches result records and renders them to PDF.
type Generator struct {
	ModelCatalog *catalog.ModelCatalog
	Library      *catalog.TestLibrary
	Logger       framework.Logger
}

// Generate builds the report for the given result IDs. IDs that do not
// resolve to a result are listed as invalid on the cover page and skipped.
// Returns the valid IDs and the path of the combined PDF.
func (g Generator) Generate(resultIDs []string, opts Options) ([]string, string, error) {
	logger := framework.OrNull(g.Logger)

	outDir := opts.OutDir
	if outDir == "" {
		outDir = "./report"
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, "", fmt.Errorf("cannot create report directory: %w", err)
	}

	var validIDs []string
	results := make(map[string]*catalog.Result)
	for _, id := range resultIDs {
		result, err := g.Library.GetResult(id)
		if err != nil {
			logger.Printf("Skipping result %s: %s", id, err)
			continue
		}
		validIDs = append(validIDs, id)
		results[id] = result
	}

	timestamp := time.Now()
	baseName := "VF_Report_" + timestamp.Format("20060102-150405")

	coverPath := filepath.Join(outDir, baseName+"_cover.pdf")
	if err := g.renderCover(coverPath, baseName+".pdf", timestamp, resultIDs, validIDs); err != nil {
		return validIDs, "", err
	}

	pagePaths := []string{coverPath}
	for i, id := range validIDs {
		pagePath := filepath.Join(outDir, fmt.Sprintf("%s_%d.pdf", baseName, i))
		if err := g.renderResult(pagePath, id, results[id]); err != nil {
			return validIDs, "", err
		}
		pagePaths = append(pagePaths, pagePath)
	}

	combinedPath := filepath.Join(outDir, baseName+".pdf")
	if err := pdfapi.MergeCreateFile(pagePaths, combinedPath, false, nil); err != nil {
		return validIDs, "", fmt.Errorf("cannot merge report pages: %w", err)
	}
	if opts.OnlyCombined {
		for _, p := range pagePaths {
			_ = os.Remove(p)
		}
	}
	logger.Printf("Report generated at %s", combinedPath)
	return validIDs, combinedPath, nil
}

func (g Generator) renderCover(path, reportName string, timestamp time.Time, requested, valid []string) error {
	pdf := newPage()
	printParamValue(pdf, "Report Name: ", reportName, 14)
	pdf.Ln(10)
	printParamValue(pdf, "Created Date: ", timestamp.Format("2006-01-02 15:04:05"), 14)
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Contains data for the following result IDs:")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 14)
	for _, id := range valid {
		pdf.Cell(40, 10, "")
		pdf.Cell(0, 10, id)
		pdf.Ln(10)
	}

	if len(valid) < len(requested) {
		pdf.Ln(10)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "The following IDs were invalid:")
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 14)
		validSet := make(map[string]bool, len(valid))
		for _, id := range valid {
			validSet[id] = true
		}
		for _, id := range requested {
			if !validSet[id] {
				pdf.Cell(40, 10, "")
				pdf.Cell(0, 10, id)
				pdf.Ln(10)
			}
		}
	}
	return pdf.OutputFileAndClose(path)
}

func (g Generator) renderResult(path, resultID string, result *catalog.Result) error {
	modelInstance, err := g.ModelCatalog.GetModelInstance(result.ModelInstanceID, "", "")
	if err != nil {
		return err
	}
	model, err := g.ModelCatalog.GetModel(modelInstance.ModelID, "")
	if err != nil {
		return err
	}
	testInstance, err := g.Library.GetTestInstance(result.TestInstanceID, "", "", "")
	if err != nil {
		return err
	}
	test, err := g.Library.GetTestDefinition(testInstance.TestID, "")
	if err != nil {
		return err
	}
	test.Instances = nil
	model.Instances = nil

	pdf := newPage()
	printParamValue(pdf, "Result ID: ", resultID, 14)
	pdf.Ln(10)

	sections := []struct {
		title  string
		record interface{}
	}{
		{"Result Info", result},
		{"Model Info", model},
		{"Model Instance Info", modelInstance},
		{"Test Info", test},
		{"Test Instance Info", testInstance},
	}
	for _, section := range sections {
		pdf.Ln(10)
		pdf.SetFont("Arial", "BU", 14)
		pdf.CellFormat(190, 10, section.title, "0", 1, "C", false, 0, "")
		pdf.Ln(5)
		if err := printRecord(pdf, section.record); err != nil {
			return err
		}
	}
	return pdf.OutputFileAndClose(path)
}

func newPage() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 18)
		pdf.Ln(5)
		pdf.CellFormat(190, 10, "Validation Framework Report", "1", 0, "C", false, 0, "")
		pdf.Ln(20)
	})
	pdf.AddPage()
	return pdf
}

// printRecord renders a record as sorted key/value lines, the way the
// service returned it.
func printRecord(pdf *fpdf.Fpdf, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printParamValue(pdf, k+": ", fmt.Sprintf("%v", fields[k]), 12)
		pdf.Ln(8)
	}
	return nil
}

func printParamValue(pdf *fpdf.Fpdf, param, value string, fontSize float64) {
	pdf.SetFont("Arial", "B", fontSize)
	pdf.Cell(50, 10, param)
	pdf.SetFont("Arial", "", fontSize)
	pdf.Cell(0, 10, value)
}
