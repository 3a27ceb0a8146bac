package sales

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var dateParamPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// reportPath: opsiyonel start_date/end_date parametrelerini backend
// rapor uç noktasına aktarır. Tarih formatı YYYY-MM-DD olmalı.
func reportPath(c *fiber.Ctx) (string, error) {
	start := c.Query("start_date")
	end := c.Query("end_date")

	for _, d := range []string{start, end} {
		if d != "" && !dateParamPattern.MatchString(d) {
			return "", fiber.NewError(fiber.StatusBadRequest, "Tarih formatı YYYY-MM-DD olmalı")
		}
	}

	path := "/sale/sales-report/"
	switch {
	case start != "" && end != "":
		path += fmt.Sprintf("?start_date=%s&end_date=%s", start, end)
	case start != "":
		path += "?start_date=" + start
	case end != "":
		path += "?end_date=" + end
	}
	return path, nil
}

// GET /api/reports/sales
func SalesReportHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := reportPath(c)
		if err != nil {
			return err
		}

		var report models.SalesReport
		if err := client.Get(c.UserContext(), path, &report); err != nil {
			return err
		}
		return c.JSON(report)
	}
}

// GET /api/reports/sales/export
// Rapor verisini XLSX dosyası olarak indirir. Hesap backend'de,
// biçimlendirme burada yapılır.
func ExportSalesReportHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := reportPath(c)
		if err != nil {
			return err
		}

		var report models.SalesReport
		if err := client.Get(c.UserContext(), path, &report); err != nil {
			return err
		}

		f, err := buildReportWorkbook(&report)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı: "+err.Error())
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı: "+err.Error())
		}

		fileName := fmt.Sprintf("satis-raporu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
		return c.Send(buf.Bytes())
	}
}

// buildReportWorkbook: Özet, durum dağılımı, günlük trend ve en çok
// satan ürünler için ayrı sheet'ler oluşturur.
func buildReportWorkbook(report *models.SalesReport) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := "Özet"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	f.SetCellValue(summary, "A1", "Toplam Satış")
	f.SetCellValue(summary, "B1", report.TotalSales)
	f.SetCellValue(summary, "A2", "Toplam Ciro")
	f.SetCellValue(summary, "B2", report.TotalRevenue)

	statusSheet := "Durum Dağılımı"
	if _, err := f.NewSheet(statusSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(statusSheet, "A1", "Durum")
	f.SetCellValue(statusSheet, "B1", "Adet")
	for i, sc := range report.SalesStatusCounts {
		row := i + 2
		f.SetCellValue(statusSheet, fmt.Sprintf("A%d", row), string(sc.Status))
		f.SetCellValue(statusSheet, fmt.Sprintf("B%d", row), sc.Count)
	}

	trendSheet := "Günlük Trend"
	if _, err := f.NewSheet(trendSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(trendSheet, "A1", "Tarih")
	f.SetCellValue(trendSheet, "B1", "Satış Adedi")
	f.SetCellValue(trendSheet, "C1", "Ciro")
	for i, p := range report.SalesTrends {
		row := i + 2
		f.SetCellValue(trendSheet, fmt.Sprintf("A%d", row), p.Date)
		f.SetCellValue(trendSheet, fmt.Sprintf("B%d", row), p.Count)
		f.SetCellValue(trendSheet, fmt.Sprintf("C%d", row), p.Revenue)
	}

	productSheet := "En Çok Satanlar"
	if _, err := f.NewSheet(productSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(productSheet, "A1", "Ürün")
	f.SetCellValue(productSheet, "B1", "Adet")
	f.SetCellValue(productSheet, "C1", "Ciro")
	for i, p := range report.BestSellingProducts {
		row := i + 2
		f.SetCellValue(productSheet, fmt.Sprintf("A%d", row), p.ProductName)
		f.SetCellValue(productSheet, fmt.Sprintf("B%d", row), p.Quantity)
		f.SetCellValue(productSheet, fmt.Sprintf("C%d", row), p.Revenue)
	}

	return f, nil
}

// POST /api/exchange-rates/fetch
// Güncel kurları backend'den çeker, cevabı olduğu gibi aktarır.
func FetchExchangeRatesHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rates json.RawMessage
		if err := client.Post(c.UserContext(), "/fetch-exchange-rates/", nil, &rates); err != nil {
			return err
		}
		return c.JSON(rates)
	}
}
