package pages

import (
	"fmt"
	"io"

	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/a-h/templ"
)

// AdminStats summarizes barangay-wide portal activity.
type AdminStats struct {
	TotalComplaints      int64
	PendingComplaints    int64
	UnassignedComplaints int64
	TotalAssistance      int64
	PendingAssistance    int64
	UnassignedAssistance int64
	TotalResidents       int64
	UnverifiedResidents  int64
	UnreadFeedback       int64
	UnreadNotifications  int64
}

type AdminDashboardView struct {
	Admin            *models.StaffAdmin
	Stats            AdminStats
	UrgentComplaints []models.Complaint
	UrgentAssistance []models.AssistanceRequest
	Flash            string
}

// AdminDashboard renders the barangay-wide overview
func AdminDashboard(v AdminDashboardView) templ.Component {
	return page("Admin Dashboard | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Barangay Overview</h1>`)

		fmt.Fprint(w, `<div class="mt-4 grid grid-cols-2 gap-4 md:grid-cols-5">`)
		statCard(w, "Total Complaints", v.Stats.TotalComplaints)
		statCard(w, "Pending Complaints", v.Stats.PendingComplaints)
		statCard(w, "Unassigned Complaints", v.Stats.UnassignedComplaints)
		statCard(w, "Total Assistance", v.Stats.TotalAssistance)
		statCard(w, "Pending Assistance", v.Stats.PendingAssistance)
		statCard(w, "Unassigned Assistance", v.Stats.UnassignedAssistance)
		statCard(w, "Residents", v.Stats.TotalResidents)
		statCard(w, "Awaiting Verification", v.Stats.UnverifiedResidents)
		statCard(w, "Unread Feedback", v.Stats.UnreadFeedback)
		statCard(w, "Unread Notifications", v.Stats.UnreadNotifications)
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<div class="mt-8 grid gap-6 md:grid-cols-2">`)

		fmt.Fprint(w, `<section><h2 class="text-lg font-semibold">Urgent Complaints</h2><div class="mt-2 space-y-2">`)
		if len(v.UrgentComplaints) == 0 {
			fmt.Fprint(w, `<p class="text-sm text-gray-500">None open.</p>`)
		}
		for _, complaint := range v.UrgentComplaints {
			fmt.Fprint(w, `<div class="rounded-lg bg-white p-3 shadow-sm">`)
			badge(w, complaint.Priority)
			fmt.Fprintf(w, ` <a href="/admin/complaints/%d" class="font-medium">%s</a>`, complaint.ID, esc(complaint.Title))
			fmt.Fprintf(w, `<div class="text-sm text-gray-500">%s, %s</div>`,
				esc(complaint.User.DisplayName()), complaint.CreatedAt.Format("Jan 2, 2006"))
			fmt.Fprint(w, `</div>`)
		}
		fmt.Fprint(w, `</div></section>`)

		fmt.Fprint(w, `<section><h2 class="text-lg font-semibold">Urgent Assistance Requests</h2><div class="mt-2 space-y-2">`)
		if len(v.UrgentAssistance) == 0 {
			fmt.Fprint(w, `<p class="text-sm text-gray-500">None open.</p>`)
		}
		for _, request := range v.UrgentAssistance {
			fmt.Fprint(w, `<div class="rounded-lg bg-white p-3 shadow-sm">`)
			badge(w, request.Urgency)
			fmt.Fprintf(w, ` <a href="/admin/assistance/%d" class="font-medium">%s</a>`, request.ID, esc(request.Title))
			fmt.Fprintf(w, `<div class="text-sm text-gray-500">%s, %s</div>`,
				esc(request.User.DisplayName()), request.CreatedAt.Format("Jan 2, 2006"))
			fmt.Fprint(w, `</div>`)
		}
		fmt.Fprint(w, `</div></section></div>`)
	})
}

type AdminCaseListView struct {
	Admin       *models.StaffAdmin
	CaseType    string
	Complaints  []models.Complaint
	Requests    []models.AssistanceRequest
	Staff       []models.StaffAdmin
	Designation string
	Status      string
	Priority    string
	SearchQuery string
	Statuses    []string
	Pagination  Pagination
	Flash       string
}

func assigneeName(assignee *models.StaffAdmin) string {
	if assignee == nil {
		return "Unassigned"
	}
	return assignee.DisplayName()
}

// AdminCaseList renders the triage view for complaints or assistance
func AdminCaseList(v AdminCaseListView) templ.Component {
	title := "Complaints"
	basePath := "/admin/complaints"
	priorityLabel := "Priority"
	if v.CaseType == "assistance" {
		title = "Assistance Requests"
		basePath = "/admin/assistance"
		priorityLabel = "Urgency"
	}
	return page(title+" | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">%s</h1>`, title)

		fmt.Fprintf(w, `<form method="get" action="%s" class="mt-4 flex flex-wrap items-center gap-2">`, basePath)
		fmt.Fprint(w, `<select name="designation">`)
		for _, option := range []string{"unassigned", "assigned", "all"} {
			selected := ""
			if option == v.Designation {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, option, selected, esc(titleize(option)))
		}
		fmt.Fprint(w, `</select><select name="status"><option value="">Any status</option>`)
		for _, status := range v.Statuses {
			selected := ""
			if status == v.Status {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, status, selected, esc(titleize(status)))
		}
		fmt.Fprint(w, `</select>`)
		fmt.Fprintf(w, `<input type="search" name="q" value="%s" placeholder="Search">`, esc(v.SearchQuery))
		fmt.Fprintf(w, `<button type="submit" class="btn">Filter</button> <span class="text-sm text-gray-400">%s filter via query</span></form>`, priorityLabel)

		fmt.Fprint(w, `<table class="mt-4 w-full table-auto text-sm"><thead><tr>`)
		fmt.Fprintf(w, `<th>Title</th><th>Resident</th><th>%s</th><th>Status</th><th>Assignee</th><th>Filed</th></tr></thead><tbody>`, priorityLabel)

		if v.CaseType == "assistance" {
			for _, request := range v.Requests {
				fmt.Fprintf(w, `<tr><td><a href="%s/%d">%s</a></td><td>%s</td><td>`,
					basePath, request.ID, esc(request.Title), esc(request.User.DisplayName()))
				badge(w, request.Urgency)
				fmt.Fprint(w, `</td><td>`)
				badge(w, request.Status)
				fmt.Fprintf(w, `</td><td>%s</td><td>%s</td></tr>`,
					esc(assigneeName(request.AssignedTo)), request.CreatedAt.Format("Jan 2, 2006"))
			}
			if len(v.Requests) == 0 {
				fmt.Fprint(w, `<tr><td colspan="6" class="text-gray-500">No assistance requests match these filters.</td></tr>`)
			}
		} else {
			for _, complaint := range v.Complaints {
				fmt.Fprintf(w, `<tr><td><a href="%s/%d">%s</a></td><td>%s</td><td>`,
					basePath, complaint.ID, esc(complaint.Title), esc(complaint.User.DisplayName()))
				badge(w, complaint.Priority)
				fmt.Fprint(w, `</td><td>`)
				badge(w, complaint.Status)
				fmt.Fprintf(w, `</td><td>%s</td><td>%s</td></tr>`,
					esc(assigneeName(complaint.AssignedTo)), complaint.CreatedAt.Format("Jan 2, 2006"))
			}
			if len(v.Complaints) == 0 {
				fmt.Fprint(w, `<tr><td colspan="6" class="text-gray-500">No complaints match these filters.</td></tr>`)
			}
		}
		fmt.Fprint(w, `</tbody></table>`)

		fmt.Fprintf(w, `<div class="mt-2"><a href="%s/export" class="btn btn-ghost">Export to Excel</a></div>`, basePath)
		writePagination(w, v.Pagination, basePath)
	})
}

type AdminCaseDetailView struct {
	Admin     *models.StaffAdmin
	CaseType  string
	Complaint *models.Complaint
	Request   *models.AssistanceRequest
	Staff     []models.StaffAdmin
	Statuses  []string
	Flash     string
}

// AdminCaseDetail renders one case with assignment and status controls
func AdminCaseDetail(v AdminCaseDetailView) templ.Component {
	var (
		title         string
		currentStatus string
		id            uint
		assignedToID  *uint
	)
	if v.CaseType == "assistance" {
		title = v.Request.Title
		currentStatus = v.Request.Status
		id = v.Request.ID
		assignedToID = v.Request.AssignedToID
	} else {
		title = v.Complaint.Title
		currentStatus = v.Complaint.Status
		id = v.Complaint.ID
		assignedToID = v.Complaint.AssignedToID
	}

	return page(title+" | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">%s</h1>`, esc(title))

		fmt.Fprint(w, `<dl class="mt-4 grid grid-cols-2 gap-x-8 gap-y-2 text-sm">`)
		if v.CaseType == "assistance" {
			request := v.Request
			detailRow(w, "Resident", request.User.DisplayName())
			detailRow(w, "Email", request.User.Email)
			detailRow(w, "Phone", request.User.Phone)
			detailRow(w, "Type", titleize(request.Type))
			detailRow(w, "Urgency", titleize(request.Urgency))
			detailRow(w, "Status", titleize(request.Status))
			detailRow(w, "Address", request.Address)
			detailRow(w, "Assignee", assigneeName(request.AssignedTo))
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
			detailRow(w, "Email", complaint.User.Email)
			detailRow(w, "Phone", complaint.User.Phone)
			detailRow(w, "Category", titleize(complaint.Category))
			detailRow(w, "Priority", titleize(complaint.Priority))
			detailRow(w, "Status", titleize(complaint.Status))
			detailRow(w, "Location", complaint.LocationDescription)
			detailRow(w, "Address", complaint.Address)
			detailRow(w, "Assignee", assigneeName(complaint.AssignedTo))
			detailRow(w, "Filed", complaint.CreatedAt.Format("January 2, 2006 15:04"))
			if complaint.ResolvedAt != nil {
				detailRow(w, "Resolved", complaint.ResolvedAt.Format("January 2, 2006 15:04"))
			}
			fmt.Fprint(w, `</dl>`)
			fmt.Fprintf(w, `<p class="mt-4 whitespace-pre-wrap">%s</p>`, esc(complaint.Description))
			if complaint.AdminRemarks != "" {
				fmt.Fprintf(w, `<div class="mt-4 rounded-lg bg-white p-3 shadow-sm"><h2 class="font-semibold">Remarks</h2><p class="mt-1 whitespace-pre-wrap text-sm">%s</p></div>`, esc(complaint.AdminRemarks))
			}
			if complaint.ResolutionNotes != "" {
				fmt.Fprintf(w, `<div class="mt-4 rounded-lg bg-white p-3 shadow-sm"><h2 class="font-semibold">Resolution Notes</h2><p class="mt-1 whitespace-pre-wrap text-sm">%s</p></div>`, esc(complaint.ResolutionNotes))
			}
			writeCaseAttachmentLinks(w, attachmentLinksForComplaint(complaint))
		}

		fmt.Fprintf(w, `<form method="post" action="/admin/cases/%s/%d/assign" class="mt-6 max-w-md space-y-2">`, v.CaseType, id)
		fmt.Fprint(w, `<h2 class="font-semibold">Assign To</h2><select name="staff_id" required>`)
		fmt.Fprint(w, `<option value="">Choose a staff member</option>`)
		for _, member := range v.Staff {
			selected := ""
			if assignedToID != nil && *assignedToID == member.ID {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%d"%s>%s (%s)</option>`, member.ID, selected, esc(member.DisplayName()), esc(member.Role))
		}
		fmt.Fprint(w, `</select><button type="submit" class="btn btn-primary">Assign</button></form>`)

		fmt.Fprintf(w, `<form method="post" action="/admin/cases/%s/%d/status" class="mt-4 max-w-md space-y-2">`, v.CaseType, id)
		fmt.Fprint(w, `<h2 class="font-semibold">Update Status</h2><select name="status">`)
		for _, status := range v.Statuses {
			selected := ""
			if status == currentStatus {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, status, selected, esc(titleize(status)))
		}
		fmt.Fprint(w, `</select><button type="submit" class="btn">Update</button></form>`)

		fmt.Fprintf(w, `<div class="mt-4"><a href="/admin/cases/%s/%d/pdf" class="btn btn-ghost">Download PDF Summary</a></div>`, v.CaseType, id)
	})
}

type AdminResidentsView struct {
	Admin       *models.StaffAdmin
	Residents   []models.Resident
	Verified    string
	SearchQuery string
	Pagination  Pagination
	Flash       string
}

// AdminResidents renders the resident registry with verification controls
func AdminResidents(v AdminResidentsView) templ.Component {
	return page("Residents | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Residents</h1>`)

		fmt.Fprint(w, `<form method="get" action="/admin/residents" class="mt-4 flex items-center gap-2">`)
		fmt.Fprint(w, `<select name="verified"><option value="">All</option>`)
		for _, option := range []struct{ value, label string }{{"yes", "Verified"}, {"no", "Unverified"}} {
			selected := ""
			if option.value == v.Verified {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, option.value, selected, option.label)
		}
		fmt.Fprintf(w, `</select><input type="search" name="q" value="%s" placeholder="Name, email or phone">`, esc(v.SearchQuery))
		fmt.Fprint(w, `<button type="submit" class="btn">Filter</button></form>`)

		fmt.Fprint(w, `<table class="mt-4 w-full table-auto text-sm"><thead><tr>`)
		fmt.Fprint(w, `<th>Name</th><th>Email</th><th>Phone</th><th>Address</th><th>Status</th><th>Registered</th><th></th></tr></thead><tbody>`)
		for _, resident := range v.Residents {
			fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				esc(resident.DisplayName()), esc(resident.Email), esc(resident.Phone), esc(resident.Address))
			if resident.IsVerified {
				fmt.Fprint(w, `<span class="badge badge-verified">Verified</span>`)
			} else {
				fmt.Fprint(w, `<span class="badge badge-pending">Pending</span>`)
			}
			fmt.Fprintf(w, `</td><td>%s</td><td class="flex gap-1">`, resident.CreatedAt.Format("Jan 2, 2006"))
			if !resident.IsVerified {
				fmt.Fprintf(w, `<form method="post" action="/admin/residents/%d/verify"><button type="submit" class="btn btn-primary">Verify</button></form>`, resident.ID)
			}
			fmt.Fprintf(w, `<form method="post" action="/admin/residents/%d/delete" onsubmit="return confirm('Delete this resident and all their cases?')"><button type="submit" class="btn btn-danger">Delete</button></form>`, resident.ID)
			fmt.Fprint(w, `</td></tr>`)
		}
		if len(v.Residents) == 0 {
			fmt.Fprint(w, `<tr><td colspan="7" class="text-gray-500">No residents match these filters.</td></tr>`)
		}
		fmt.Fprint(w, `</tbody></table>`)
		writePagination(w, v.Pagination, "/admin/residents")
	})
}

type AdminAccountsView struct {
	Admin      *models.StaffAdmin
	Accounts   []models.StaffAdmin
	Role       string
	Pagination Pagination
	Flash      string
}

// AdminAccounts renders staff and admin account management
func AdminAccounts(v AdminAccountsView) templ.Component {
	return page("Accounts | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Staff &amp; Admin Accounts</h1>`)

		fmt.Fprint(w, `<form method="get" action="/admin/accounts" class="mt-4 flex items-center gap-2">`)
		fmt.Fprint(w, `<select name="role"><option value="">All roles</option>`)
		for _, role := range []string{models.RoleStaff, models.RoleAdmin} {
			selected := ""
			if role == v.Role {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, role, selected, esc(titleize(role)))
		}
		fmt.Fprint(w, `</select><button type="submit" class="btn">Filter</button></form>`)

		fmt.Fprint(w, `<details class="mt-4"><summary class="btn btn-primary">New Account</summary>`)
		fmt.Fprint(w, `<form method="post" action="/admin/accounts" class="mt-2 max-w-lg space-y-2">`)
		fmt.Fprint(w, `<div class="grid grid-cols-2 gap-2">`)
		fmt.Fprint(w, `<label>First Name<input type="text" name="first_name" required></label>`)
		fmt.Fprint(w, `<label>Last Name<input type="text" name="last_name" required></label>`)
		fmt.Fprint(w, `<label>Username<input type="text" name="username" required></label>`)
		fmt.Fprint(w, `<label>Email<input type="email" name="email" required></label>`)
		fmt.Fprint(w, `<label>Position<input type="text" name="position"></label>`)
		fmt.Fprint(w, `<label>Department<input type="text" name="department"></label>`)
		fmt.Fprint(w, `</div>`)
		fmt.Fprint(w, `<label>Role<select name="role">`)
		fmt.Fprintf(w, `<option value="%s">Staff</option><option value="%s">Admin</option>`, models.RoleStaff, models.RoleAdmin)
		fmt.Fprint(w, `</select></label>`)
		fmt.Fprint(w, `<label>Password<input type="password" name="password" minlength="8" required></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Create Account</button></form></details>`)

		fmt.Fprint(w, `<table class="mt-4 w-full table-auto text-sm"><thead><tr>`)
		fmt.Fprint(w, `<th>Name</th><th>Username</th><th>Email</th><th>Role</th><th>Position</th><th>Active</th><th></th></tr></thead><tbody>`)
		for _, account := range v.Accounts {
			fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>`,
				esc(account.DisplayName()), esc(account.Username), esc(account.Email))
			badge(w, account.Role)
			fmt.Fprintf(w, `</td><td>%s</td><td>%t</td><td class="flex gap-1">`, esc(account.Position), account.IsActive)
			if account.ID != v.Admin.ID {
				toggleLabel := "Deactivate"
				if !account.IsActive {
					toggleLabel = "Activate"
				}
				fmt.Fprintf(w, `<form method="post" action="/admin/accounts/%d/toggle"><button type="submit" class="btn">%s</button></form>`, account.ID, toggleLabel)
				fmt.Fprintf(w, `<form method="post" action="/admin/accounts/%d/delete" onsubmit="return confirm('Delete this account?')"><button type="submit" class="btn btn-danger">Delete</button></form>`, account.ID)
			}
			fmt.Fprint(w, `</td></tr>`)
		}
		if len(v.Accounts) == 0 {
			fmt.Fprint(w, `<tr><td colspan="7" class="text-gray-500">No accounts.</td></tr>`)
		}
		fmt.Fprint(w, `</tbody></table>`)
		writePagination(w, v.Pagination, "/admin/accounts")
	})
}

type AdminFeedbackView struct {
	Admin      *models.StaffAdmin
	Items      []models.Feedback
	Stats      *services.FeedbackStats
	Categories []string
	Filters    services.FeedbackFilters
	Pagination Pagination
	Flash      string
}

// AdminFeedback renders the feedback inbox with summary stats
func AdminFeedback(v AdminFeedbackView) templ.Component {
	return page("Feedback | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Feedback</h1>`)

		fmt.Fprint(w, `<div class="mt-4 grid grid-cols-2 gap-4 md:grid-cols-4">`)
		statCard(w, "Total", v.Stats.Total)
		statCard(w, "Unread", v.Stats.Unread)
		statCard(w, "Awaiting Response", v.Stats.Pending)
		fmt.Fprintf(w, `<div class="stat-card rounded-xl bg-white p-4 shadow-sm"><div class="text-2xl font-bold">%.1f</div><div class="text-sm text-gray-500">Average Rating</div></div>`, v.Stats.AverageRating)
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<form method="get" action="/admin/feedback" class="mt-4 flex flex-wrap items-center gap-2">`)
		fmt.Fprint(w, `<select name="category"><option value="">Any category</option>`)
		for _, category := range v.Categories {
			selected := ""
			if category == v.Filters.Category {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, category, selected, esc(titleize(category)))
		}
		fmt.Fprint(w, `</select><select name="status"><option value="">Any status</option>`)
		for _, status := range []string{"unread", "read", "responded", "pending"} {
			selected := ""
			if status == v.Filters.Status {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, status, selected, esc(titleize(status)))
		}
		fmt.Fprint(w, `</select><select name="rating"><option value="">Any rating</option>`)
		for rating := 1; rating <= 5; rating++ {
			selected := ""
			if rating == v.Filters.Rating {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%d"%s>%d stars</option>`, rating, selected, rating)
		}
		fmt.Fprint(w, `</select>`)
		fmt.Fprintf(w, `<input type="search" name="q" value="%s" placeholder="Search">`, esc(v.Filters.SearchQuery))
		fmt.Fprint(w, `<button type="submit" class="btn">Filter</button></form>`)

		fmt.Fprint(w, `<div class="mt-4 space-y-3">`)
		for _, item := range v.Items {
			fmt.Fprint(w, `<div class="rounded-xl bg-white p-4 shadow-sm">`)
			fmt.Fprintf(w, `<div class="flex items-center gap-2"><span class="font-semibold">%s</span>`, esc(item.Subject))
			fmt.Fprintf(w, `<span class="text-sm text-amber-500">%d/5</span>`, item.Rating)
			badge(w, item.Category)
			if !item.IsRead {
				fmt.Fprint(w, `<span class="badge badge-unread">Unread</span>`)
			}
			if item.IsResponded {
				fmt.Fprint(w, `<span class="badge badge-responded">Responded</span>`)
			}
			fmt.Fprint(w, `</div>`)
			fmt.Fprintf(w, `<div class="text-sm text-gray-500">%s (%s), %s</div>`,
				esc(item.Name), esc(item.Email), item.CreatedAt.Format("Jan 2, 2006"))
			fmt.Fprintf(w, `<p class="mt-2 whitespace-pre-wrap text-sm">%s</p>`, esc(item.Message))
			if item.IsResponded {
				fmt.Fprintf(w, `<div class="mt-2 rounded-lg bg-gray-50 p-2 text-sm"><span class="font-medium">Response:</span> %s</div>`, esc(item.AdminResponse))
			} else {
				fmt.Fprintf(w, `<form method="post" action="/admin/feedback/%d/respond" class="mt-2 space-y-1">`, item.ID)
				fmt.Fprint(w, `<textarea name="response" rows="2" required placeholder="Reply to this feedback"></textarea>`)
				fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Send Response</button></form>`)
			}
			fmt.Fprint(w, `<div class="mt-2 flex gap-1">`)
			if !item.IsRead {
				fmt.Fprintf(w, `<form method="post" action="/admin/feedback/%d/read"><button type="submit" class="btn">Mark Read</button></form>`, item.ID)
			}
			fmt.Fprintf(w, `<form method="post" action="/admin/feedback/%d/delete" onsubmit="return confirm('Delete this feedback?')"><button type="submit" class="btn btn-danger">Delete</button></form>`, item.ID)
			fmt.Fprint(w, `</div></div>`)
		}
		if len(v.Items) == 0 {
			fmt.Fprint(w, `<p class="text-sm text-gray-500">No feedback matches these filters.</p>`)
		}
		fmt.Fprint(w, `</div>`)
		writePagination(w, v.Pagination, "/admin/feedback")
	})
}

type AdminActivityLogView struct {
	Admin      *models.StaffAdmin
	Logs       []models.ActivityLog
	Categories []string
	Filters    services.ActivityLogFilters
	Pagination Pagination
	Flash      string
}

// AdminActivityLog renders the audit trail
func AdminActivityLog(v AdminActivityLogView) templ.Component {
	return page("Activity Log | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Activity Log</h1>`)

		fmt.Fprint(w, `<form method="get" action="/admin/activity" class="mt-4 flex flex-wrap items-center gap-2">`)
		fmt.Fprint(w, `<select name="actor_kind"><option value="">Any actor</option>`)
		for _, kind := range []models.ActorKind{models.ActorKindResident, models.ActorKindStaff, models.ActorKindAdmin} {
			selected := ""
			if kind == v.Filters.ActorKind {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, kind, selected, esc(titleize(string(kind))))
		}
		fmt.Fprint(w, `</select><select name="category"><option value="">Any category</option>`)
		for _, category := range v.Categories {
			selected := ""
			if category == v.Filters.Category {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, category, selected, esc(titleize(category)))
		}
		fmt.Fprint(w, `</select>`)
		fmt.Fprintf(w, `<input type="text" name="type" value="%s" placeholder="Activity type">`, esc(v.Filters.Type))
		fmt.Fprint(w, `<input type="date" name="date_from"><input type="date" name="date_to">`)
		fmt.Fprintf(w, `<input type="search" name="q" value="%s" placeholder="Search">`, esc(v.Filters.SearchQuery))
		fmt.Fprint(w, `<button type="submit" class="btn">Filter</button>`)
		fmt.Fprint(w, `<a href="/admin/activity/export" class="btn btn-ghost">Export to Excel</a></form>`)

		fmt.Fprint(w, `<table class="mt-4 w-full table-auto text-sm"><thead><tr>`)
		fmt.Fprint(w, `<th>When</th><th>Actor</th><th>Type</th><th>Category</th><th>Description</th><th>IP</th></tr></thead><tbody>`)
		for _, entry := range v.Logs {
			fmt.Fprintf(w, `<tr><td>%s</td><td>%s (%s)</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				entry.CreatedAt.Format("Jan 2, 2006 15:04:05"),
				esc(entry.ActorName), esc(string(entry.ActorKind)),
				esc(titleize(entry.ActivityType)), esc(titleize(entry.ActivityCategory)),
				esc(entry.Description), esc(entry.IPAddress))
		}
		if len(v.Logs) == 0 {
			fmt.Fprint(w, `<tr><td colspan="6" class="text-gray-500">No activity matches these filters.</td></tr>`)
		}
		fmt.Fprint(w, `</tbody></table>`)
		writePagination(w, v.Pagination, "/admin/activity")
	})
}

type AdminAnalyticsView struct {
	Admin     *models.StaffAdmin
	Analytics *services.CaseAnalytics
	Flash     string
}

func writeBreakdown(w io.Writer, title string, counts map[string]int64) {
	fmt.Fprintf(w, `<section class="rounded-xl bg-white p-4 shadow-sm"><h2 class="font-semibold">%s</h2><table class="mt-2 w-full text-sm">`, esc(title))
	for key, count := range counts {
		fmt.Fprintf(w, `<tr><td>%s</td><td class="text-right">%d</td></tr>`, esc(titleize(key)), count)
	}
	fmt.Fprint(w, `</table></section>`)
}

func writeMonthly(w io.Writer, title string, months []services.MonthCount) {
	fmt.Fprintf(w, `<section class="rounded-xl bg-white p-4 shadow-sm"><h2 class="font-semibold">%s</h2><table class="mt-2 w-full text-sm">`, esc(title))
	for _, month := range months {
		fmt.Fprintf(w, `<tr><td>%s</td><td class="text-right">%d</td></tr>`, esc(month.Month), month.Count)
	}
	fmt.Fprint(w, `</table></section>`)
}

// AdminAnalytics renders case volume breakdowns
func AdminAnalytics(v AdminAnalyticsView) templ.Component {
	analytics := v.Analytics
	return page("Analytics | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Analytics</h1>`)

		fmt.Fprint(w, `<div class="mt-4 grid grid-cols-2 gap-4">`)
		statCard(w, "Total Complaints", analytics.TotalComplaints)
		statCard(w, "Total Assistance Requests", analytics.TotalAssistance)
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<div class="mt-6 grid gap-4 md:grid-cols-3">`)
		writeBreakdown(w, "Complaints by Status", analytics.ComplaintsByStatus)
		writeBreakdown(w, "Complaints by Priority", analytics.ComplaintsByPriority)
		writeBreakdown(w, "Complaints by Category", analytics.ComplaintsByCategory)
		writeBreakdown(w, "Assistance by Status", analytics.AssistanceByStatus)
		writeBreakdown(w, "Assistance by Type", analytics.AssistanceByType)
		writeBreakdown(w, "Assistance by Urgency", analytics.AssistanceByUrgency)
		writeMonthly(w, "Complaints per Month", analytics.MonthlyComplaints)
		writeMonthly(w, "Assistance per Month", analytics.MonthlyAssistance)
		fmt.Fprint(w, `</div>`)
	})
}

type AdminSMSLogsView struct {
	Admin      *models.StaffAdmin
	Logs       []models.SMSLog
	Configured bool
	Pagination Pagination
	Flash      string
}

// AdminSMSLogs renders the outbound text message history
func AdminSMSLogs(v AdminSMSLogsView) templ.Component {
	return page("SMS Logs | Barangay Portal", adminNav, v.Admin.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">SMS Logs</h1>`)

		if !v.Configured {
			fmt.Fprint(w, `<div class="mt-2 rounded-lg border border-amber-200 bg-amber-50 px-4 py-3 text-sm text-amber-800">The SMS gateway is not configured. Set the gateway API key to enable text messages.</div>`)
		} else {
			fmt.Fprint(w, `<form method="post" action="/admin/sms-logs/test" class="mt-2 flex items-center gap-2">`)
			fmt.Fprint(w, `<input type="tel" name="number" placeholder="09XXXXXXXXX" required>`)
			fmt.Fprint(w, `<button type="submit" class="btn">Send Test Message</button></form>`)
		}

		fmt.Fprint(w, `<table class="mt-4 w-full table-auto text-sm"><thead><tr>`)
		fmt.Fprint(w, `<th>When</th><th>Recipient</th><th>Message</th><th>Status</th><th>Network</th></tr></thead><tbody>`)
		for _, entry := range v.Logs {
			fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>`,
				entry.CreatedAt.Format("Jan 2, 2006 15:04"), esc(entry.Recipient), esc(entry.Message))
			badge(w, entry.Status)
			fmt.Fprintf(w, `</td><td>%s</td></tr>`, esc(entry.Network))
		}
		if len(v.Logs) == 0 {
			fmt.Fprint(w, `<tr><td colspan="5" class="text-gray-500">No messages sent yet.</td></tr>`)
		}
		fmt.Fprint(w, `</tbody></table>`)
		writePagination(w, v.Pagination, "/admin/sms-logs")
	})
}
