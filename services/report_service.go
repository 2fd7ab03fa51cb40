package services

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"barangay_portal_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService produces Excel exports and PDF case summaries for the
// admin reporting screens.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// ExportActivityLogs writes the filtered activity log to an Excel workbook.
// The same filters as the on-screen listing apply; the export is not paginated.
func (s *ReportService) ExportActivityLogs(filters ActivityLogFilters) (*bytes.Buffer, error) {
	logs, _, err := GetActivityLogs(s.DB, filters, 1, 10000)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Activity Log"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Actor", "Email", "Role", "Category", "Activity", "Description", "Status", "IP Address"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, entry := range logs {
		status := "Success"
		if !entry.IsSuccessful {
			status = "Failed"
		}
		row := []interface{}{
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.ActorName,
			entry.ActorEmail,
			string(entry.ActorKind),
			entry.ActivityCategory,
			entry.ActivityType,
			entry.Description,
			status,
			entry.IPAddress,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write activity row: %w", err)
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "C", 25)
	f.SetColWidth(sheet, "G", "G", 50)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	return buf, nil
}

// CaseExportFilters narrows the case exports.
type CaseExportFilters struct {
	Status   string
	Priority string // Urgency for assistance requests
	DateFrom time.Time
	DateTo   time.Time
}

func staffDisplayName(staff *models.StaffAdmin) string {
	if staff == nil {
		return "Unassigned"
	}
	return staff.DisplayName()
}

// ExportComplaints writes complaints matching the filters to an Excel
// workbook, newest first.
func (s *ReportService) ExportComplaints(filters CaseExportFilters) (*bytes.Buffer, error) {
	query := s.DB.Model(&models.Complaint{}).
		Preload("User").
		Preload("AssignedTo")

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		query = query.Where("priority = ?", filters.Priority)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at < ?", filters.DateTo.AddDate(0, 0, 1))
	}

	var complaints []models.Complaint
	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to load complaints: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Complaints"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Date Filed", "Resident", "Title", "Category", "Priority", "Status", "Location", "Assigned To", "Resolved At"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, c := range complaints {
		resolvedAt := ""
		if c.ResolvedAt != nil {
			resolvedAt = c.ResolvedAt.Format("2006-01-02 15:04")
		}
		row := []interface{}{
			c.ID,
			c.CreatedAt.Format("2006-01-02 15:04"),
			c.User.DisplayName(),
			c.Title,
			c.Category,
			c.Priority,
			c.Status,
			c.LocationDescription,
			staffDisplayName(c.AssignedTo),
			resolvedAt,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write complaint row: %w", err)
		}
	}

	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "D", 30)
	f.SetColWidth(sheet, "H", "I", 25)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	return buf, nil
}

// ExportAssistanceRequests writes assistance requests matching the filters
// to an Excel workbook, newest first.
func (s *ReportService) ExportAssistanceRequests(filters CaseExportFilters) (*bytes.Buffer, error) {
	query := s.DB.Model(&models.AssistanceRequest{}).
		Preload("User").
		Preload("AssignedTo")

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		query = query.Where("urgency = ?", filters.Priority)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at < ?", filters.DateTo.AddDate(0, 0, 1))
	}

	var requests []models.AssistanceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to load assistance requests: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Assistance Requests"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Date Filed", "Resident", "Title", "Type", "Urgency", "Status", "Address", "Assigned To", "Completed At"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range requests {
		completedAt := ""
		if r.CompletedAt != nil {
			completedAt = r.CompletedAt.Format("2006-01-02 15:04")
		}
		row := []interface{}{
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.User.DisplayName(),
			r.Title,
			r.Type,
			r.Urgency,
			r.Status,
			r.Address,
			staffDisplayName(r.AssignedTo),
			completedAt,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write assistance row: %w", err)
		}
	}

	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "D", 30)
	f.SetColWidth(sheet, "H", "I", 25)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	return buf, nil
}

// caseSummaryField is one labeled line in the PDF summary.
type caseSummaryField struct {
	Label string
	Value string
}

func renderCaseSummaryHTML(title string, fields []caseSummaryField, narrative map[string]string, narrativeOrder []string) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; color: #1a1a1a; }
h1 { font-size: 18px; border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }
h2 { font-size: 14px; margin-top: 24px; }
table { border-collapse: collapse; width: 100%; margin-top: 12px; }
td { padding: 6px 8px; border: 1px solid #ccc; vertical-align: top; }
td.label { width: 30%; font-weight: bold; background: #f2f2f2; }
p.narrative { white-space: pre-wrap; margin: 8px 0 0; }
.footer { margin-top: 36px; font-size: 10px; color: #666; }
</style></head><body>`)

	b.WriteString("<h1>" + html.EscapeString(title) + "</h1><table>")
	for _, f := range fields {
		b.WriteString(`<tr><td class="label">` + html.EscapeString(f.Label) + "</td>")
		b.WriteString("<td>" + html.EscapeString(f.Value) + "</td></tr>")
	}
	b.WriteString("</table>")

	for _, heading := range narrativeOrder {
		text := narrative[heading]
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString("<h2>" + html.EscapeString(heading) + "</h2>")
		b.WriteString(`<p class="narrative">` + html.EscapeString(text) + "</p>")
	}

	b.WriteString(`<div class="footer">Generated by Barangay Portal on ` +
		time.Now().Format("January 2, 2006 15:04") + `</div></body></html>`)
	return b.String()
}

// GenerateComplaintSummaryPDF renders a printable summary of one complaint.
func (s *ReportService) GenerateComplaintSummaryPDF(complaintID uint) ([]byte, error) {
	var complaint models.Complaint
	err := s.DB.Preload("User").Preload("AssignedTo").First(&complaint, complaintID).Error
	if err != nil {
		return nil, err
	}

	fields := []caseSummaryField{
		{"Complaint ID", fmt.Sprintf("#%d", complaint.ID)},
		{"Filed By", complaint.User.DisplayName()},
		{"Date Filed", complaint.CreatedAt.Format("January 2, 2006 15:04")},
		{"Category", complaint.Category},
		{"Priority", strings.ToUpper(complaint.Priority)},
		{"Status", strings.ToUpper(complaint.Status)},
		{"Location", complaint.LocationDescription},
		{"Address", complaint.Address},
		{"Assigned To", staffDisplayName(complaint.AssignedTo)},
	}
	if complaint.ResolvedAt != nil {
		fields = append(fields, caseSummaryField{"Resolved At", complaint.ResolvedAt.Format("January 2, 2006 15:04")})
	}

	htmlContent := renderCaseSummaryHTML(
		"Complaint Summary: "+complaint.Title,
		fields,
		map[string]string{
			"Description":      complaint.Description,
			"Remarks":          complaint.AdminRemarks,
			"Resolution Notes": complaint.ResolutionNotes,
		},
		[]string{"Description", "Remarks", "Resolution Notes"},
	)

	return GeneratePDF(htmlContent, DefaultPDFOptions())
}

// GenerateAssistanceSummaryPDF renders a printable summary of one
// assistance request.
func (s *ReportService) GenerateAssistanceSummaryPDF(assistanceID uint) ([]byte, error) {
	var request models.AssistanceRequest
	err := s.DB.Preload("User").Preload("AssignedTo").First(&request, assistanceID).Error
	if err != nil {
		return nil, err
	}

	fields := []caseSummaryField{
		{"Request ID", fmt.Sprintf("#%d", request.ID)},
		{"Filed By", request.User.DisplayName()},
		{"Date Filed", request.CreatedAt.Format("January 2, 2006 15:04")},
		{"Type", request.Type},
		{"Urgency", strings.ToUpper(request.Urgency)},
		{"Status", strings.ToUpper(request.Status)},
		{"Address", request.Address},
		{"Assigned To", staffDisplayName(request.AssignedTo)},
	}
	if request.CompletedAt != nil {
		fields = append(fields, caseSummaryField{"Completed At", request.CompletedAt.Format("January 2, 2006 15:04")})
	}

	htmlContent := renderCaseSummaryHTML(
		"Assistance Request Summary: "+request.Title,
		fields,
		map[string]string{
			"Description":      request.Description,
			"Remarks":          request.AdminRemarks,
			"Completion Notes": request.CompletionNotes,
		},
		[]string{"Description", "Remarks", "Completion Notes"},
	)

	return GeneratePDF(htmlContent, DefaultPDFOptions())
}

// statusCount is a grouped count row used by the analytics queries.
type statusCount struct {
	Key   string
	Count int64
}

// CaseAnalytics summarizes case volume for the admin analytics screen.
type CaseAnalytics struct {
	TotalComplaints      int64
	TotalAssistance      int64
	ComplaintsByStatus   map[string]int64
	ComplaintsByPriority map[string]int64
	ComplaintsByCategory map[string]int64
	AssistanceByStatus   map[string]int64
	AssistanceByType     map[string]int64
	AssistanceByUrgency  map[string]int64
	MonthlyComplaints    []MonthCount
	MonthlyAssistance    []MonthCount
}

// MonthCount is the case volume for one month, formatted YYYY-MM.
type MonthCount struct {
	Month string
	Count int64
}

func groupedCounts(db *gorm.DB, model interface{}, column string) (map[string]int64, error) {
	var rows []statusCount
	err := db.Model(model).
		Select(column + " as key, COUNT(*) as count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group by %s: %w", column, err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}

func monthlyCounts(db *gorm.DB, model interface{}, months int) ([]MonthCount, error) {
	since := time.Now().AddDate(0, -months, 0)
	var rows []statusCount
	err := db.Model(model).
		Select("strftime('%Y-%m', created_at) as key, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("key").
		Order("key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly counts: %w", err)
	}
	out := make([]MonthCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthCount{Month: r.Key, Count: r.Count})
	}
	return out, nil
}

// Analytics computes the case volume breakdowns shown on the admin
// analytics page. Monthly series cover the last 12 months.
func (s *ReportService) Analytics() (*CaseAnalytics, error) {
	a := &CaseAnalytics{}

	if err := s.DB.Model(&models.Complaint{}).Count(&a.TotalComplaints).Error; err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}
	if err := s.DB.Model(&models.AssistanceRequest{}).Count(&a.TotalAssistance).Error; err != nil {
		return nil, fmt.Errorf("failed to count assistance requests: %w", err)
	}

	var err error
	if a.ComplaintsByStatus, err = groupedCounts(s.DB, &models.Complaint{}, "status"); err != nil {
		return nil, err
	}
	if a.ComplaintsByPriority, err = groupedCounts(s.DB, &models.Complaint{}, "priority"); err != nil {
		return nil, err
	}
	if a.ComplaintsByCategory, err = groupedCounts(s.DB, &models.Complaint{}, "category"); err != nil {
		return nil, err
	}
	if a.AssistanceByStatus, err = groupedCounts(s.DB, &models.AssistanceRequest{}, "status"); err != nil {
		return nil, err
	}
	if a.AssistanceByType, err = groupedCounts(s.DB, &models.AssistanceRequest{}, "type"); err != nil {
		return nil, err
	}
	if a.AssistanceByUrgency, err = groupedCounts(s.DB, &models.AssistanceRequest{}, "urgency"); err != nil {
		return nil, err
	}
	if a.MonthlyComplaints, err = monthlyCounts(s.DB, &models.Complaint{}, 12); err != nil {
		return nil, err
	}
	if a.MonthlyAssistance, err = monthlyCounts(s.DB, &models.AssistanceRequest{}, 12); err != nil {
		return nil, err
	}

	return a, nil
}
