package utils

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// ReportFilename 报告下载时的文件名
const ReportFilename = "crop_report.pdf"

// Report 报告内容
type Report struct {
	District      string
	Season        string
	PredictedCrop string
}

// A4 高度（pt），坐标按页面底部为原点换算
const pageHeight = 842.0

// RenderReport 在内存中生成 PDF
func RenderReport(r Report) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Crop Recommendation Report", true)
	pdf.SetCreator("go-cropadvisor", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 14)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	lines := []struct {
		y    float64
		text string
	}{
		{800, "Crop Recommendation Report"},
		{770, "District: " + r.District},
		{750, "Season: " + r.Season},
		{730, "Predicted Crop: " + r.PredictedCrop},
		{710, "Generated using ML + KSNDMC Data"},
	}
	for _, l := range lines {
		pdf.Text(100, pageHeight-l.y, tr(l.text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
