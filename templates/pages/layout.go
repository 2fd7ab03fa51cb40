package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

// Pagination carries the paging state every list page renders.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}

func NewPagination(page, perPage int, total int64) Pagination {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// navLink is one sidebar entry.
type navLink struct {
	Href  string
	Label string
}

var residentNav = []navLink{
	{"/dashboard", "Dashboard"},
	{"/complaints", "My Complaints"},
	{"/complaints/new", "File Complaint"},
	{"/assistance", "My Assistance"},
	{"/assistance/new", "Request Assistance"},
	{"/forum", "Community Forum"},
	{"/notifications", "Notifications"},
	{"/feedback", "Feedback"},
	{"/profile", "Profile"},
	{"/logout", "Logout"},
}

var staffNav = []navLink{
	{"/staff/dashboard", "Dashboard"},
	{"/staff/complaints", "Assigned Complaints"},
	{"/staff/assistance", "Assigned Assistance"},
	{"/staff/notifications", "Notifications"},
	{"/staff/logout", "Logout"},
}

var adminNav = []navLink{
	{"/admin/dashboard", "Dashboard"},
	{"/admin/complaints", "Complaints"},
	{"/admin/assistance", "Assistance Requests"},
	{"/admin/residents", "Residents"},
	{"/admin/accounts", "Accounts"},
	{"/admin/feedback", "Feedback"},
	{"/admin/activity", "Activity Log"},
	{"/admin/analytics", "Analytics"},
	{"/admin/sms-logs", "SMS Logs"},
	{"/staff/notifications", "Notifications"},
	{"/staff/logout", "Logout"},
}

func writeHead(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	fmt.Fprintf(w, `<title>%s</title>`, esc(title))
	fmt.Fprint(w, `<script src="/static/js/htmx.min.js"></script><link rel="stylesheet" href="/static/css/app.css"></head>`)
}

func writeFlash(w io.Writer, flash string) {
	if flash == "" {
		return
	}
	fmt.Fprintf(w, `<div class="flash rounded-lg border border-emerald-200 bg-emerald-50 px-4 py-3 text-sm text-emerald-800">%s</div>`, esc(flash))
}

func writeNav(w io.Writer, links []navLink, userName string) {
	fmt.Fprint(w, `<aside class="sidebar"><div class="sidebar-user">`)
	fmt.Fprintf(w, `<span class="font-medium">%s</span></div><nav>`, esc(userName))
	for _, link := range links {
		fmt.Fprintf(w, `<a href="%s" class="nav-link">%s</a>`, link.Href, esc(link.Label))
	}
	fmt.Fprint(w, `</nav></aside>`)
}

func writePagination(w io.Writer, p Pagination, basePath string) {
	if p.TotalPages <= 1 {
		return
	}
	fmt.Fprint(w, `<div class="pagination flex items-center gap-2 mt-4">`)
	if p.HasPrev() {
		fmt.Fprintf(w, `<a href="%s?page=%d" class="page-link">Previous</a>`, basePath, p.Page-1)
	}
	fmt.Fprintf(w, `<span class="text-sm text-gray-500">Page %d of %d (%d total)</span>`, p.Page, p.TotalPages, p.Total)
	if p.HasNext() {
		fmt.Fprintf(w, `<a href="%s?page=%d" class="page-link">Next</a>`, basePath, p.Page+1)
	}
	fmt.Fprint(w, `</div>`)
}

// page wraps body rendering with the shared document shell.
func page(title string, nav []navLink, userName, flash string, body func(w io.Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writeHead(w, title)
		fmt.Fprint(w, `<body class="min-h-screen bg-gray-50"><div class="app-shell flex">`)
		if nav != nil {
			writeNav(w, nav, userName)
		}
		fmt.Fprint(w, `<main class="main-content flex-1 p-6">`)
		writeFlash(w, flash)
		body(w)
		fmt.Fprint(w, `</main></div></body></html>`)
		return nil
	})
}

// publicPage wraps body rendering for pages without a sidebar.
func publicPage(title, flash string, body func(w io.Writer)) templ.Component {
	return page(title, nil, "", flash, body)
}

// badge renders a small status or priority label.
func badge(w io.Writer, value string) {
	fmt.Fprintf(w, `<span class="badge badge-%s">%s</span>`, esc(value), esc(titleize(value)))
}

func titleize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
