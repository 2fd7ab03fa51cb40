package pages

import (
	"fmt"
	"io"

	"barangay_portal_go/models"

	"github.com/a-h/templ"
)

// ResidentStats are the counters on the resident dashboard.
type ResidentStats struct {
	TotalComplaints     int64
	OpenComplaints      int64
	TotalAssistance     int64
	OpenAssistance      int64
	UnreadNotifications int64
}

type ResidentDashboardView struct {
	Resident         *models.Resident
	Stats            ResidentStats
	RecentComplaints []models.Complaint
	RecentAssistance []models.AssistanceRequest
	Flash            string
}

func statCard(w io.Writer, label string, value int64) {
	fmt.Fprintf(w, `<div class="stat-card rounded-xl bg-white p-4 shadow-sm"><div class="text-2xl font-bold">%d</div><div class="text-sm text-gray-500">%s</div></div>`,
		value, esc(label))
}

// ResidentDashboard renders the resident landing view after login
func ResidentDashboard(v ResidentDashboardView) templ.Component {
	return page("Dashboard | Barangay Portal", residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">Welcome, %s</h1>`, esc(v.Resident.FirstName))

		fmt.Fprint(w, `<div class="stats-grid mt-6 grid grid-cols-2 gap-4 md:grid-cols-5">`)
		statCard(w, "Complaints", v.Stats.TotalComplaints)
		statCard(w, "Open Complaints", v.Stats.OpenComplaints)
		statCard(w, "Assistance Requests", v.Stats.TotalAssistance)
		statCard(w, "Open Requests", v.Stats.OpenAssistance)
		statCard(w, "Unread Notifications", v.Stats.UnreadNotifications)
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<div class="mt-6">`)
		fmt.Fprint(w, `<form method="post" action="/assistance/emergency">`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-danger">Request Emergency Assistance</button>`)
		fmt.Fprint(w, `</form></div>`)

		fmt.Fprint(w, `<h2 class="mt-8 text-lg font-semibold">Recent Complaints</h2>`)
		if len(v.RecentComplaints) == 0 {
			fmt.Fprint(w, `<p class="text-sm text-gray-500">No complaints filed yet.</p>`)
		}
		for _, complaint := range v.RecentComplaints {
			fmt.Fprintf(w, `<div class="list-row flex items-center justify-between border-b py-2"><a href="/complaints/%d">#%d %s</a>`,
				complaint.ID, complaint.ID, esc(complaint.Title))
			badge(w, complaint.Status)
			fmt.Fprint(w, `</div>`)
		}

		fmt.Fprint(w, `<h2 class="mt-8 text-lg font-semibold">Recent Assistance Requests</h2>`)
		if len(v.RecentAssistance) == 0 {
			fmt.Fprint(w, `<p class="text-sm text-gray-500">No assistance requests yet.</p>`)
		}
		for _, request := range v.RecentAssistance {
			fmt.Fprintf(w, `<div class="list-row flex items-center justify-between border-b py-2"><a href="/assistance/%d">#%d %s</a>`,
				request.ID, request.ID, esc(request.Title))
			badge(w, request.Status)
			fmt.Fprint(w, `</div>`)
		}
	})
}

type MyComplaintsView struct {
	Resident   *models.Resident
	Complaints []models.Complaint
	Status     string
	Pagination Pagination
	Flash      string
}

// MyComplaints renders the resident complaint list
func MyComplaints(v MyComplaintsView) templ.Component {
	return page("My Complaints | Barangay Portal", residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">My Complaints</h1>`)
		fmt.Fprint(w, `<table class="data-table mt-4 w-full"><thead><tr><th>ID</th><th>Title</th><th>Category</th><th>Priority</th><th>Status</th><th>Filed</th></tr></thead><tbody>`)
		for _, complaint := range v.Complaints {
			fmt.Fprintf(w, `<tr><td>#%d</td><td><a href="/complaints/%d">%s</a></td><td>%s</td><td>`,
				complaint.ID, complaint.ID, esc(complaint.Title), esc(titleize(complaint.Category)))
			badge(w, complaint.Priority)
			fmt.Fprint(w, `</td><td>`)
			badge(w, complaint.Status)
			fmt.Fprintf(w, `</td><td>%s</td></tr>`, complaint.CreatedAt.Format("Jan 2, 2006"))
		}
		fmt.Fprint(w, `</tbody></table>`)
		writePagination(w, v.Pagination, "/complaints")
	})
}

type ComplaintFormView struct {
	Resident   *models.Resident
	Categories []string
	Flash      string
}

// ComplaintForm renders the complaint filing form
func ComplaintForm(v ComplaintFormView) templ.Component {
	return page("File Complaint | Barangay Portal", residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">File a Complaint</h1>`)
		fmt.Fprint(w, `<form method="post" action="/complaints" enctype="multipart/form-data" class="mt-4 max-w-2xl space-y-4">`)
		fmt.Fprint(w, `<label>Title<input type="text" name="title" required></label>`)
		fmt.Fprint(w, `<label>Category<select name="category" required>`)
		for _, category := range v.Categories {
			fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(category), esc(titleize(category)))
		}
		fmt.Fprint(w, `</select></label>`)
		fmt.Fprint(w, `<label>Description<textarea name="description" rows="5" required></textarea></label>`)
		fmt.Fprint(w, `<label>Location Description<input type="text" name="location_description" placeholder="Near the covered court" required></label>`)
		fmt.Fprint(w, `<label>Address<input type="text" name="address" required></label>`)
		fmt.Fprint(w, `<input type="hidden" name="latitude"><input type="hidden" name="longitude">`)
		fmt.Fprint(w, `<label>Attachments<input type="file" name="attachments" multiple accept=".pdf,.doc,.docx,.txt,.jpg,.jpeg,.png"></label>`)
		fmt.Fprint(w, `<p class="text-sm text-gray-500">Priority is assessed automatically from your description.</p>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Submit Complaint</button>`)
		fmt.Fprint(w, `</form>`)
	})
}

type ComplaintDetailView struct {
	Resident  *models.Resident
	Complaint models.Complaint
	Flash     string
}

func detailRow(w io.Writer, label, value string) {
	fmt.Fprintf(w, `<div class="detail-row"><dt class="text-sm text-gray-500">%s</dt><dd>%s</dd></div>`, esc(label), esc(value))
}

// ComplaintDetail renders one complaint for its owner
func ComplaintDetail(v ComplaintDetailView) templ.Component {
	complaint := v.Complaint
	return page(fmt.Sprintf("Complaint #%d | Barangay Portal", complaint.ID), residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">Complaint #%d: %s</h1><div class="mt-2 flex gap-2">`, complaint.ID, esc(complaint.Title))
		badge(w, complaint.Status)
		badge(w, complaint.Priority)
		fmt.Fprint(w, `</div><dl class="mt-4 space-y-2">`)
		detailRow(w, "Category", titleize(complaint.Category))
		detailRow(w, "Location", complaint.LocationDescription)
		detailRow(w, "Address", complaint.Address)
		detailRow(w, "Filed", complaint.CreatedAt.Format("January 2, 2006 15:04"))
		if complaint.AssignedTo != nil {
			detailRow(w, "Assigned To", complaint.AssignedTo.DisplayName())
		}
		if complaint.ResolvedAt != nil {
			detailRow(w, "Resolved", complaint.ResolvedAt.Format("January 2, 2006 15:04"))
		}
		fmt.Fprint(w, `</dl>`)

		fmt.Fprintf(w, `<h2 class="mt-6 text-lg font-semibold">Description</h2><p class="whitespace-pre-wrap">%s</p>`, esc(complaint.Description))
		if complaint.ResolutionNotes != "" {
			fmt.Fprintf(w, `<h2 class="mt-6 text-lg font-semibold">Resolution Notes</h2><p class="whitespace-pre-wrap">%s</p>`, esc(complaint.ResolutionNotes))
		}

		if len(complaint.Attachments) > 0 {
			fmt.Fprint(w, `<h2 class="mt-6 text-lg font-semibold">Attachments</h2><ul>`)
			for _, attachment := range complaint.Attachments {
				fmt.Fprintf(w, `<li><a href="/attachments/complaints/%d">%s</a></li>`, attachment.ID, esc(attachment.FileName))
			}
			fmt.Fprint(w, `</ul>`)
		}

		if !complaint.IsTerminal() {
			fmt.Fprintf(w, `<form method="post" action="/complaints/%d/follow-up" class="mt-6 max-w-xl space-y-2">`, complaint.ID)
			fmt.Fprint(w, `<label>Follow Up<textarea name="message" rows="3" required></textarea></label>`)
			fmt.Fprint(w, `<button type="submit" class="btn">Send Follow-up</button></form>`)
		}
		if complaint.Status == models.ComplaintStatusPending {
			fmt.Fprintf(w, `<form method="post" action="/complaints/%d/delete" class="mt-4">`, complaint.ID)
			fmt.Fprint(w, `<button type="submit" class="btn btn-danger">Withdraw Complaint</button></form>`)
		}
	})
}

type MyAssistanceView struct {
	Resident   *models.Resident
	Requests   []models.AssistanceRequest
	Status     string
	Pagination Pagination
	Flash      string
}

// MyAssistance renders the resident assistance request list
func MyAssistance(v MyAssistanceView) templ.Component {
	return page("My Assistance | Barangay Portal", residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">My Assistance Requests</h1>`)
		fmt.Fprint(w, `<table class="data-table mt-4 w-full"><thead><tr><th>ID</th><th>Title</th><th>Type</th><th>Urgency</th><th>Status</th><th>Filed</th></tr></thead><tbody>`)
		for _, request := range v.Requests {
			fmt.Fprintf(w, `<tr><td>#%d</td><td><a href="/assistance/%d">%s</a></td><td>%s</td><td>`,
				request.ID, request.ID, esc(request.Title), esc(titleize(request.Type)))
			badge(w, request.Urgency)
			fmt.Fprint(w, `</td><td>`)
			badge(w, request.Status)
			fmt.Fprintf(w, `</td><td>%s</td></tr>`, request.CreatedAt.Format("Jan 2, 2006"))
		}
		fmt.Fprint(w, `</tbody></table>`)
		writePagination(w, v.Pagination, "/assistance")
	})
}

type AssistanceFormView struct {
	Resident *models.Resident
	Types    []string
	Flash    string
}

// AssistanceForm renders the assistance request form
func AssistanceForm(v AssistanceFormView) templ.Component {
	return page("Request Assistance | Barangay Portal", residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Request Assistance</h1>`)
		fmt.Fprint(w, `<form method="post" action="/assistance" enctype="multipart/form-data" class="mt-4 max-w-2xl space-y-4">`)
		fmt.Fprint(w, `<label>Title<input type="text" name="title" required></label>`)
		fmt.Fprint(w, `<label>Type<select name="type" required>`)
		for _, t := range v.Types {
			fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(t), esc(titleize(t)))
		}
		fmt.Fprint(w, `</select></label>`)
		fmt.Fprint(w, `<label>Description<textarea name="description" rows="5" required></textarea></label>`)
		fmt.Fprint(w, `<label>Address<input type="text" name="address" required></label>`)
		fmt.Fprint(w, `<input type="hidden" name="latitude"><input type="hidden" name="longitude">`)
		fmt.Fprint(w, `<label>Attachments<input type="file" name="attachments" multiple accept=".pdf,.doc,.docx,.txt,.jpg,.jpeg,.png"></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Submit Request</button>`)
		fmt.Fprint(w, `</form>`)
	})
}

type AssistanceDetailView struct {
	Resident *models.Resident
	Request  models.AssistanceRequest
	Flash    string
}

// AssistanceDetail renders one assistance request for its owner
func AssistanceDetail(v AssistanceDetailView) templ.Component {
	request := v.Request
	return page(fmt.Sprintf("Request #%d | Barangay Portal", request.ID), residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">Assistance Request #%d: %s</h1><div class="mt-2 flex gap-2">`, request.ID, esc(request.Title))
		badge(w, request.Status)
		badge(w, request.Urgency)
		fmt.Fprint(w, `</div><dl class="mt-4 space-y-2">`)
		detailRow(w, "Type", titleize(request.Type))
		detailRow(w, "Address", request.Address)
		detailRow(w, "Filed", request.CreatedAt.Format("January 2, 2006 15:04"))
		if request.AssignedTo != nil {
			detailRow(w, "Assigned To", request.AssignedTo.DisplayName())
		}
		if request.CompletedAt != nil {
			detailRow(w, "Completed", request.CompletedAt.Format("January 2, 2006 15:04"))
		}
		fmt.Fprint(w, `</dl>`)

		fmt.Fprintf(w, `<h2 class="mt-6 text-lg font-semibold">Description</h2><p class="whitespace-pre-wrap">%s</p>`, esc(request.Description))
		if request.CompletionNotes != "" {
			fmt.Fprintf(w, `<h2 class="mt-6 text-lg font-semibold">Completion Notes</h2><p class="whitespace-pre-wrap">%s</p>`, esc(request.CompletionNotes))
		}

		if len(request.Attachments) > 0 {
			fmt.Fprint(w, `<h2 class="mt-6 text-lg font-semibold">Attachments</h2><ul>`)
			for _, attachment := range request.Attachments {
				fmt.Fprintf(w, `<li><a href="/attachments/assistance/%d">%s</a></li>`, attachment.ID, esc(attachment.FileName))
			}
			fmt.Fprint(w, `</ul>`)
		}

		if !request.IsTerminal() {
			fmt.Fprintf(w, `<form method="post" action="/assistance/%d/follow-up" class="mt-6 max-w-xl space-y-2">`, request.ID)
			fmt.Fprint(w, `<label>Follow Up<textarea name="message" rows="3" required></textarea></label>`)
			fmt.Fprint(w, `<button type="submit" class="btn">Send Follow-up</button></form>`)
		}
		if request.Status == models.AssistanceStatusPending {
			fmt.Fprintf(w, `<form method="post" action="/assistance/%d/delete" class="mt-4">`, request.ID)
			fmt.Fprint(w, `<button type="submit" class="btn btn-danger">Withdraw Request</button></form>`)
		}
	})
}

type NotificationsView struct {
	Actor         models.Actor
	Notifications []models.Notification
	UnreadCount   int64
	Status        string
	Type          string
	Pagination    Pagination
	Flash         string
}

// Notifications renders the notification inbox for any actor
func Notifications(v NotificationsView) templ.Component {
	nav := residentNav
	basePath := "/notifications"
	if ref := v.Actor.Ref(); ref.Kind != models.ActorKindResident {
		basePath = "/staff/notifications"
		nav = staffNav
		if ref.Kind == models.ActorKindAdmin {
			basePath = "/admin/notifications"
			nav = adminNav
		}
	}
	return page("Notifications | Barangay Portal", nav, v.Actor.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">Notifications <span class="badge">%d unread</span></h1>`, v.UnreadCount)
		fmt.Fprintf(w, `<form method="post" action="%s/read-all" class="mt-2"><button type="submit" class="btn btn-ghost">Mark all as read</button></form>`, basePath)
		fmt.Fprint(w, `<div class="mt-4 space-y-2">`)
		if len(v.Notifications) == 0 {
			fmt.Fprint(w, `<p class="text-sm text-gray-500">No notifications.</p>`)
		}
		for _, n := range v.Notifications {
			cls := "notification rounded-lg bg-white p-4 shadow-sm"
			if !n.IsRead {
				cls += " notification-unread"
			}
			fmt.Fprintf(w, `<div class="%s"><div class="flex items-center justify-between"><strong>%s</strong>`, cls, esc(n.Title))
			badge(w, n.Priority)
			fmt.Fprint(w, `</div>`)
			fmt.Fprintf(w, `<p class="mt-1 whitespace-pre-wrap text-sm">%s</p>`, esc(n.Message))
			fmt.Fprintf(w, `<div class="mt-2 flex gap-2 text-sm text-gray-500"><span>%s</span>`, n.CreatedAt.Format("Jan 2, 2006 15:04"))
			if !n.IsRead {
				fmt.Fprintf(w, `<form method="post" action="%s/%d/read"><button type="submit">Mark read</button></form>`, basePath, n.ID)
			}
			if !n.IsArchived {
				fmt.Fprintf(w, `<form method="post" action="%s/%d/archive"><button type="submit">Archive</button></form>`, basePath, n.ID)
			}
			fmt.Fprint(w, `</div></div>`)
		}
		fmt.Fprint(w, `</div>`)
		writePagination(w, v.Pagination, basePath)
	})
}

type ProfileView struct {
	Resident *models.Resident
	Flash    string
}

// Profile renders the resident profile and password forms
func Profile(v ProfileView) templ.Component {
	resident := v.Resident
	return page("Profile | Barangay Portal", residentNav, resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">My Profile</h1>`)
		fmt.Fprint(w, `<form method="post" action="/profile" enctype="multipart/form-data" class="mt-4 max-w-xl space-y-4">`)
		fmt.Fprintf(w, `<label>First Name<input type="text" name="first_name" value="%s" required></label>`, esc(resident.FirstName))
		fmt.Fprintf(w, `<label>Middle Name<input type="text" name="middle_name" value="%s"></label>`, esc(resident.MiddleName))
		fmt.Fprintf(w, `<label>Last Name<input type="text" name="last_name" value="%s" required></label>`, esc(resident.LastName))
		fmt.Fprintf(w, `<label>Suffix<input type="text" name="suffix" value="%s"></label>`, esc(resident.Suffix))
		fmt.Fprintf(w, `<label>Phone<input type="tel" name="phone" value="%s"></label>`, esc(resident.Phone))
		fmt.Fprintf(w, `<label>Address<input type="text" name="address" value="%s" required></label>`, esc(resident.Address))
		fmt.Fprint(w, `<label>Profile Picture<input type="file" name="profile_picture" accept=".jpg,.jpeg,.png,.gif,.webp"></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Save Changes</button></form>`)

		fmt.Fprint(w, `<h2 class="mt-8 text-lg font-semibold">Change Password</h2>`)
		fmt.Fprint(w, `<form method="post" action="/profile/password" class="mt-4 max-w-xl space-y-4">`)
		fmt.Fprint(w, `<label>Current Password<input type="password" name="current_password" required></label>`)
		fmt.Fprint(w, `<label>New Password<input type="password" name="new_password" minlength="8" required></label>`)
		fmt.Fprint(w, `<label>Confirm Password<input type="password" name="confirm_password" minlength="8" required></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn">Change Password</button></form>`)
	})
}

type FeedbackFormView struct {
	Resident   *models.Resident
	Categories []string
	Flash      string
}

// FeedbackForm renders the feedback form, prefilled for residents
func FeedbackForm(v FeedbackFormView) templ.Component {
	name, email, userName := "", "", ""
	nav := residentNav
	if v.Resident != nil {
		name = v.Resident.DisplayName()
		email = v.Resident.Email
		userName = v.Resident.DisplayName()
	} else {
		nav = nil
	}
	return page("Feedback | Barangay Portal", nav, userName, v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Share Your Feedback</h1>`)
		fmt.Fprint(w, `<form method="post" action="/feedback" class="mt-4 max-w-xl space-y-4">`)
		fmt.Fprintf(w, `<label>Name<input type="text" name="name" value="%s" required></label>`, esc(name))
		fmt.Fprintf(w, `<label>Email<input type="email" name="email" value="%s" required></label>`, esc(email))
		fmt.Fprint(w, `<label>Category<select name="category">`)
		for _, category := range v.Categories {
			fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(category), esc(titleize(category)))
		}
		fmt.Fprint(w, `</select></label>`)
		fmt.Fprint(w, `<label>Rating<select name="rating">`)
		for rating := 5; rating >= 1; rating-- {
			fmt.Fprintf(w, `<option value="%d">%d</option>`, rating, rating)
		}
		fmt.Fprint(w, `</select></label>`)
		fmt.Fprint(w, `<label>Subject<input type="text" name="subject" required></label>`)
		fmt.Fprint(w, `<label>Message<textarea name="message" rows="5" required></textarea></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Submit Feedback</button></form>`)
	})
}
