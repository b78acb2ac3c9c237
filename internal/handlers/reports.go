package handlers

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/report"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/store"
)

// ReportHandler serves the admin views. Every endpoint re-reads the full log
// and recomputes its rollup; nothing here is cached between requests.
type ReportHandler struct {
	Store      *store.Store
	WindowDays int
}

func NewReportHandler(s *store.Store, windowDays int) *ReportHandler {
	return &ReportHandler{Store: s, WindowDays: windowDays}
}

// Dashboard backs the admin landing page cards.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	txs, err := h.Store.List(c.UserContext())
	if err != nil {
		log.Errorf("error loading transactions for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}
	return c.JSON(report.Summarize(txs, time.Now()))
}

// Customers returns per-customer rollups, optionally filtered with ?q=.
func (h *ReportHandler) Customers(c *fiber.Ctx) error {
	txs, err := h.Store.List(c.UserContext())
	if err != nil {
		log.Errorf("error loading transactions for customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load customers"})
	}

	rollups := report.CustomerRollups(txs)

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := rollups[:0]
		for _, r := range rollups {
			if strings.Contains(strings.ToLower(r.Name), q) {
				filtered = append(filtered, r)
			}
		}
		rollups = filtered
	}

	if rollups == nil {
		rollups = []models.CustomerRollup{}
	}
	return c.JSON(rollups)
}

// Daily returns the trailing revenue window, zero-filled per day.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.WindowDays)
	if days < 1 || days > 90 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be between 1 and 90"})
	}

	txs, err := h.Store.List(c.UserContext())
	if err != nil {
		log.Errorf("error loading transactions for daily report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load daily report"})
	}

	daily := report.DailyRollups(txs, time.Now(), days)

	totalRevenue, totalTransactions := 0, 0
	for _, d := range daily {
		totalRevenue += d.Revenue
		totalTransactions += d.TransactionCount
	}

	return c.JSON(fiber.Map{
		"days":               days,
		"daily":              daily,
		"total_revenue":      totalRevenue,
		"total_transactions": totalTransactions,
	})
}

// PaymentMethods returns the tunai/transfer distribution over the full log.
func (h *ReportHandler) PaymentMethods(c *fiber.Ctx) error {
	txs, err := h.Store.List(c.UserContext())
	if err != nil {
		log.Errorf("error loading transactions for payment report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment report"})
	}
	return c.JSON(report.PaymentMethodDistribution(txs))
}

// Export downloads the daily report and customer rollups as an XLSX workbook.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.WindowDays)
	if days < 1 || days > 90 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be between 1 and 90"})
	}

	txs, err := h.Store.List(c.UserContext())
	if err != nil {
		log.Errorf("error loading transactions for export: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load report"})
	}

	now := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	const dailySheet = "Laporan Harian"
	if err := f.SetSheetName("Sheet1", dailySheet); err != nil {
		log.Errorf("error building workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	f.SetCellValue(dailySheet, "A1", "Tanggal")
	f.SetCellValue(dailySheet, "B1", "Pendapatan")
	f.SetCellValue(dailySheet, "C1", "Jumlah Transaksi")
	for i, d := range report.DailyRollups(txs, now, days) {
		row := i + 2
		f.SetCellValue(dailySheet, fmt.Sprintf("A%d", row), d.Date)
		f.SetCellValue(dailySheet, fmt.Sprintf("B%d", row), d.Revenue)
		f.SetCellValue(dailySheet, fmt.Sprintf("C%d", row), d.TransactionCount)
	}

	const customerSheet = "Pelanggan"
	if _, err := f.NewSheet(customerSheet); err != nil {
		log.Errorf("error building workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}
	f.SetCellValue(customerSheet, "A1", "Nama")
	f.SetCellValue(customerSheet, "B1", "Jumlah Transaksi")
	f.SetCellValue(customerSheet, "C1", "Total Belanja")
	f.SetCellValue(customerSheet, "D1", "Transaksi Terakhir")
	f.SetCellValue(customerSheet, "E1", "Metode Pembayaran")
	for i, r := range report.CustomerRollups(txs) {
		row := i + 2
		methods := make([]string, len(r.PaymentMethods))
		for j, m := range r.PaymentMethods {
			methods[j] = string(m)
		}
		f.SetCellValue(customerSheet, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(customerSheet, fmt.Sprintf("B%d", row), r.TotalTransactions)
		f.SetCellValue(customerSheet, fmt.Sprintf("C%d", row), r.TotalSpent)
		f.SetCellValue(customerSheet, fmt.Sprintf("D%d", row), r.LastTransactionAt.Format(time.DateTime))
		f.SetCellValue(customerSheet, fmt.Sprintf("E%d", row), strings.Join(methods, ", "))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Errorf("error writing workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write workbook"})
	}

	filename := fmt.Sprintf("laporan-%s.xlsx", now.Format(time.DateOnly))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
