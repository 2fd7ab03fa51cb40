package pages

import (
	"fmt"
	"io"

	"barangay_portal_go/models"

	"github.com/a-h/templ"
)

// StaffStats summarizes a staff member's workload.
type StaffStats struct {
	AssignedComplaints  int64
	OpenComplaints      int64
	AssignedAssistance  int64
	OpenAssistance      int64
	UnreadNotifications int64
}

type StaffDashboardView struct {
	Staff            *models.StaffAdmin
	Stats            StaffStats
	UrgentComplaints []models.Complaint
	Flash            string
}

// StaffDashboard renders the staff workload summary
func StaffDashboard(v StaffDashboardView) templ.Component {
	return page("Staff Dashboard | Barangay Portal", staffNav, v.Staff.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">Welcome, %s</h1>`, esc(v.Staff.DisplayName()))

		fmt.Fprint(w, `<div class="mt-4 grid grid-cols-2 gap-4 md:grid-cols-5">`)
		statCard(w, "Assigned Complaints", v.Stats.AssignedComplaints)
		statCard(w, "Open Complaints", v.Stats.OpenComplaints)
		statCard(w, "Assigned Assistance", v.Stats.AssignedAssistance)
		statCard(w, "Open Assistance", v.Stats.OpenAssistance)
		statCard(w, "Unread Notifications", v.Stats.UnreadNotifications)
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<h2 class="mt-8 text-lg font-semibold">Urgent Cases Needing Attention</h2>`)
		if len(v.UrgentComplaints) == 0 {
			fmt.Fprint(w, `<p class="mt-2 text-sm text-gray-500">No urgent complaints right now.</p>`)
		}
		fmt.Fprint(w, `<div class="mt-2 space-y-2">`)
		for _, complaint := range v.UrgentComplaints {
			fmt.Fprint(w, `<div class="rounded-lg bg-white p-3 shadow-sm">`)
			badge(w, complaint.Priority)
			fmt.Fprintf(w, ` <a href="/staff/complaints/%d" class="font-medium">%s</a>`, complaint.ID, esc(complaint.Title))
			fmt.Fprintf(w, `<div class="text-sm text-gray-500">Filed by %s, %s</div>`,
				esc(complaint.User.DisplayName()), complaint.CreatedAt.Format("Jan 2, 2006"))
			fmt.Fprint(w, `</div>`)
		}
		fmt.Fprint(w, `</div>`)
	})
}

type StaffCaseListView struct {
	Staff      *models.StaffAdmin
	CaseType   string
	Complaints []models.Complaint
	Requests   []models.AssistanceRequest
	Status     string
	ShowAll    bool
	Pagination Pagination
	Flash      string
}

// StaffCaseList renders assigned complaints or assistance requests
func StaffCaseList(v StaffCaseListView) templ.Component {
	title := "Assigned Complaints"
	basePath := "/staff/complaints"
	if v.CaseType == "assistance" {
		title = "Assigned Assistance Requests"
		basePath = "/staff/assistance"
	}
	return page(title+" | Barangay Portal", staffNav, v.Staff.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">%s</h1>`, title)

		fmt.Fprintf(w, `<form method="get" action="%s" class="mt-4 flex items-center gap-2">`, basePath)
		fmt.Fprintf(w, `<input type="text" name="status" value="%s" placeholder="Status filter">`, esc(v.Status))
		checked := ""
		if v.ShowAll {
			checked = " checked"
		}
		fmt.Fprintf(w, `<label class="text-sm"><input type="checkbox" name="show_all" value="true"%s> Include closed cases</label>`, checked)
		fmt.Fprint(w, `<button type="submit" class="btn">Apply</button></form>`)

		fmt.Fprint(w, `<table class="mt-4 w-full table-auto text-sm"><thead><tr>`)
		fmt.Fprint(w, `<th>Title</th><th>Resident</th><th>Priority</th><th>Status</th><th>Filed</th></tr></thead><tbody>`)

		if v.CaseType == "assistance" {
			for _, request := range v.Requests {
				fmt.Fprintf(w, `<tr><td><a href="%s/%d">%s</a></td><td>%s</td><td>`,
					basePath, request.ID, esc(request.Title), esc(request.User.DisplayName()))
				badge(w, request.Urgency)
				fmt.Fprint(w, `</td><td>`)
				badge(w, request.Status)
				fmt.Fprintf(w, `</td><td>%s</td></tr>`, request.CreatedAt.Format("Jan 2, 2006"))
			}
			if len(v.Requests) == 0 {
				fmt.Fprint(w, `<tr><td colspan="5" class="text-gray-500">No assigned assistance requests.</td></tr>`)
			}
		} else {
			for _, complaint := range v.Complaints {
				fmt.Fprintf(w, `<tr><td><a href="%s/%d">%s</a></td><td>%s</td><td>`,
					basePath, complaint.ID, esc(complaint.Title), esc(complaint.User.DisplayName()))
				badge(w, complaint.Priority)
				fmt.Fprint(w, `</td><td>`)
				badge(w, complaint.Status)
				fmt.Fprintf(w, `</td><td>%s</td></tr>`, complaint.CreatedAt.Format("Jan 2, 2006"))
			}
			if len(v.Complaints) == 0 {
				fmt.Fprint(w, `<tr><td colspan="5" class="text-gray-500">No assigned complaints.</td></tr>`)
			}
		}
		fmt.Fprint(w, `</tbody></table>`)
		writePagination(w, v.Pagination, basePath)
	})
}

type StaffCaseDetailView struct {
	Staff     *models.StaffAdmin
	CaseType  string
	Complaint *models.Complaint
	Request   *models.AssistanceRequest
	Statuses  []string
	Flash     string
}

// StaffCaseDetail renders one assigned case with status and notes forms
func StaffCaseDetail(v StaffCaseDetailView) templ.Component {
	var (
		title         string
		currentStatus string
		id            uint
	)
	if v.CaseType == "assistance" {
		title = v.Request.Title
		currentStatus = v.Request.Status
		id = v.Request.ID
	} else {
		title = v.Complaint.Title
		currentStatus = v.Complaint.Status
		id = v.Complaint.ID
	}

	return page(title+" | Barangay Portal", staffNav, v.Staff.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">%s</h1>`, esc(title))

		fmt.Fprint(w, `<dl class="mt-4 grid grid-cols-2 gap-x-8 gap-y-2 text-sm">`)
		if v.CaseType == "assistance" {
			request := v.Request
			detailRow(w, "Resident", request.User.DisplayName())
			detailRow(w, "Phone", request.User.Phone)
			detailRow(w, "Type", titleize(request.Type))
			detailRow(w, "Urgency", titleize(request.Urgency))
			detailRow(w, "Status", titleize(request.Status))
			detailRow(w, "Address", request.Address)
			detailRow(w, "Filed", request.CreatedAt.Format("January 2, 2006 15:04"))
			if request.CompletedAt != nil {
				detailRow(w, "Completed", request.CompletedAt.Format("January 2, 2006 15:04"))
			}
			fmt.Fprint(w, `</dl>`)
			fmt.Fprintf(w, `<p class="mt-4 whitespace-pre-wrap">%s</p>`, esc(request.Description))
			if request.CompletionNotes != "" {
				fmt.Fprintf(w, `<div class="mt-4 rounded-lg bg-white p-3 shadow-sm"><h2 class="font-semibold">Completion Notes</h2><p class="mt-1 whitespace-pre-wrap text-sm">%s</p></div>`, esc(request.CompletionNotes))
			}
			writeCaseAttachmentLinks(w, attachmentLinksForAssistance(request))
		} else {
			complaint := v.Complaint
			detailRow(w, "Resident", complaint.User.DisplayName())
			detailRow(w, "Phone", complaint.User.Phone)
			detailRow(w, "Category", titleize(complaint.Category))
			detailRow(w, "Priority", titleize(complaint.Priority))
			detailRow(w, "Status", titleize(complaint.Status))
			detailRow(w, "Location", complaint.LocationDescription)
			detailRow(w, "Address", complaint.Address)
			detailRow(w, "Filed", complaint.CreatedAt.Format("January 2, 2006 15:04"))
			if complaint.ResolvedAt != nil {
				detailRow(w, "Resolved", complaint.ResolvedAt.Format("January 2, 2006 15:04"))
			}
			fmt.Fprint(w, `</dl>`)
			fmt.Fprintf(w, `<p class="mt-4 whitespace-pre-wrap">%s</p>`, esc(complaint.Description))
			if complaint.ResolutionNotes != "" {
				fmt.Fprintf(w, `<div class="mt-4 rounded-lg bg-white p-3 shadow-sm"><h2 class="font-semibold">Resolution Notes</h2><p class="mt-1 whitespace-pre-wrap text-sm">%s</p></div>`, esc(complaint.ResolutionNotes))
			}
			writeCaseAttachmentLinks(w, attachmentLinksForComplaint(complaint))
		}

		fmt.Fprintf(w, `<form method="post" action="/staff/cases/%s/%d/status" class="mt-6 max-w-md space-y-2">`, v.CaseType, id)
		fmt.Fprint(w, `<h2 class="font-semibold">Update Status</h2><select name="status">`)
		for _, status := range v.Statuses {
			selected := ""
			if status == currentStatus {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, status, selected, esc(titleize(status)))
		}
		fmt.Fprint(w, `</select>`)
		fmt.Fprint(w, `<textarea name="remarks" rows="2" placeholder="Remarks (optional)"></textarea>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Update</button></form>`)

		fmt.Fprintf(w, `<form method="post" action="/staff/cases/%s/%d/notes" class="mt-4 max-w-md space-y-2">`, v.CaseType, id)
		fmt.Fprint(w, `<h2 class="font-semibold">Notes</h2>`)
		fmt.Fprint(w, `<textarea name="notes" rows="3" required></textarea>`)
		fmt.Fprint(w, `<button type="submit" class="btn">Save Notes</button></form>`)
	})
}

type attachmentLink struct {
	Href string
	Name string
}

func attachmentLinksForComplaint(complaint *models.Complaint) []attachmentLink {
	links := make([]attachmentLink, 0, len(complaint.Attachments))
	for _, attachment := range complaint.Attachments {
		links = append(links, attachmentLink{
			Href: fmt.Sprintf("/attachments/complaints/%d", attachment.ID),
			Name: attachment.FileName,
		})
	}
	return links
}

func attachmentLinksForAssistance(request *models.AssistanceRequest) []attachmentLink {
	links := make([]attachmentLink, 0, len(request.Attachments))
	for _, attachment := range request.Attachments {
		links = append(links, attachmentLink{
			Href: fmt.Sprintf("/attachments/assistance/%d", attachment.ID),
			Name: attachment.FileName,
		})
	}
	return links
}

func writeCaseAttachmentLinks(w io.Writer, links []attachmentLink) {
	if len(links) == 0 {
		return
	}
	fmt.Fprint(w, `<div class="mt-4"><h2 class="font-semibold">Attachments</h2><ul class="mt-1 list-disc pl-5 text-sm">`)
	for _, link := range links {
		fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, link.Href, esc(link.Name))
	}
	fmt.Fprint(w, `</ul></div>`)
}
