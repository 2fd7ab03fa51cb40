package pages

import (
	"fmt"
	"io"

	"barangay_portal_go/models"

	"github.com/a-h/templ"
)

type ForumView struct {
	Resident    *models.Resident
	Posts       []models.ForumPost
	Categories  []string
	Category    string
	SearchQuery string
	Pagination  Pagination
	Flash       string
}

// Forum renders the community board, pinned posts first
func Forum(v ForumView) templ.Component {
	return page("Community Forum | Barangay Portal", residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		fmt.Fprint(w, `<h1 class="text-2xl font-semibold">Community Forum</h1>`)

		fmt.Fprint(w, `<form method="get" action="/forum" class="mt-4 flex gap-2">`)
		fmt.Fprint(w, `<select name="category"><option value="">All categories</option>`)
		for _, category := range v.Categories {
			selected := ""
			if category == v.Category {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(category), selected, esc(titleize(category)))
		}
		fmt.Fprintf(w, `</select><input type="search" name="q" value="%s" placeholder="Search posts">`, esc(v.SearchQuery))
		fmt.Fprint(w, `<button type="submit" class="btn">Filter</button></form>`)

		fmt.Fprint(w, `<details class="mt-4"><summary class="btn btn-primary">New Post</summary>`)
		fmt.Fprint(w, `<form method="post" action="/forum" enctype="multipart/form-data" class="mt-2 max-w-xl space-y-2">`)
		fmt.Fprint(w, `<label>Title<input type="text" name="title" required></label>`)
		fmt.Fprint(w, `<label>Category<select name="category">`)
		for _, category := range v.Categories {
			fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(category), esc(titleize(category)))
		}
		fmt.Fprint(w, `</select></label>`)
		fmt.Fprint(w, `<label>Content<textarea name="content" rows="4" required></textarea></label>`)
		fmt.Fprint(w, `<label>Image<input type="file" name="image" accept=".jpg,.jpeg,.png,.gif,.webp"></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary">Publish</button></form></details>`)

		fmt.Fprint(w, `<div class="mt-6 space-y-3">`)
		if len(v.Posts) == 0 {
			fmt.Fprint(w, `<p class="text-sm text-gray-500">No posts yet. Start the conversation!</p>`)
		}
		for _, post := range v.Posts {
			fmt.Fprint(w, `<article class="forum-post rounded-xl bg-white p-4 shadow-sm">`)
			if post.IsPinned {
				fmt.Fprint(w, `<span class="badge badge-pinned">Pinned</span> `)
			}
			fmt.Fprintf(w, `<a href="/forum/%d" class="font-semibold">%s</a>`, post.ID, esc(post.Title))
			fmt.Fprintf(w, `<div class="mt-1 text-sm text-gray-500">%s in %s, %s</div>`,
				esc(post.Author.DisplayName()), esc(titleize(post.Category)), post.CreatedAt.Format("Jan 2, 2006"))
			fmt.Fprintf(w, `<div class="mt-2 text-sm text-gray-500">%d reactions, %d comments</div>`,
				len(post.Reactions), len(post.Comments))
			fmt.Fprint(w, `</article>`)
		}
		fmt.Fprint(w, `</div>`)
		writePagination(w, v.Pagination, "/forum")
	})
}

type ForumPostView struct {
	Resident *models.Resident
	Post     *models.ForumPost
	Flash    string
}

// ForumPost renders one post with its comment thread
func ForumPost(v ForumPostView) templ.Component {
	post := v.Post
	return page(post.Title+" | Barangay Portal", residentNav, v.Resident.DisplayName(), v.Flash, func(w io.Writer) {
		if post.IsPinned {
			fmt.Fprint(w, `<span class="badge badge-pinned">Pinned</span>`)
		}
		fmt.Fprintf(w, `<h1 class="text-2xl font-semibold">%s</h1>`, esc(post.Title))
		fmt.Fprintf(w, `<div class="mt-1 text-sm text-gray-500">%s in %s, %s</div>`,
			esc(post.Author.DisplayName()), esc(titleize(post.Category)), post.CreatedAt.Format("January 2, 2006 15:04"))
		fmt.Fprintf(w, `<p class="mt-4 whitespace-pre-wrap">%s</p>`, esc(post.Content))

		fmt.Fprintf(w, `<div class="mt-4 flex gap-2">`)
		for _, reaction := range []string{models.ReactionLike, models.ReactionLove, models.ReactionSupport} {
			fmt.Fprintf(w, `<form method="post" action="/forum/%d/react"><input type="hidden" name="reaction" value="%s"><button type="submit" class="btn btn-ghost">%s</button></form>`,
				post.ID, reaction, esc(titleize(reaction)))
		}
		fmt.Fprintf(w, `<span class="text-sm text-gray-500">%d reactions</span></div>`, len(post.Reactions))

		if v.Resident != nil && post.AuthorID == v.Resident.ID {
			fmt.Fprintf(w, `<form method="post" action="/forum/%d/delete" class="mt-2"><button type="submit" class="btn btn-danger">Delete Post</button></form>`, post.ID)
		}

		fmt.Fprintf(w, `<h2 class="mt-8 text-lg font-semibold">Comments (%d)</h2>`, len(post.Comments))
		fmt.Fprint(w, `<div class="mt-2 space-y-3">`)
		for _, comment := range post.Comments {
			fmt.Fprint(w, `<div class="comment rounded-lg bg-white p-3 shadow-sm">`)
			fmt.Fprintf(w, `<div class="text-sm text-gray-500">%s, %s</div>`,
				esc(comment.Author.DisplayName()), comment.CreatedAt.Format("Jan 2, 2006 15:04"))
			fmt.Fprintf(w, `<p class="mt-1 whitespace-pre-wrap">%s</p>`, esc(comment.Content))
			fmt.Fprintf(w, `<div class="mt-1 flex gap-2 text-sm">`)
			for _, reaction := range []string{models.ReactionLike, models.ReactionLove} {
				fmt.Fprintf(w, `<form method="post" action="/forum/comments/%d/react"><input type="hidden" name="reaction" value="%s"><button type="submit">%s</button></form>`,
					comment.ID, reaction, esc(titleize(reaction)))
			}
			if v.Resident != nil && comment.AuthorID == v.Resident.ID {
				fmt.Fprintf(w, `<form method="post" action="/forum/comments/%d/delete"><button type="submit">Delete</button></form>`, comment.ID)
			}
			fmt.Fprint(w, `</div></div>`)
		}
		fmt.Fprint(w, `</div>`)

		fmt.Fprintf(w, `<form method="post" action="/forum/%d/comments" class="mt-4 max-w-xl space-y-2">`, post.ID)
		fmt.Fprint(w, `<label>Add a Comment<textarea name="content" rows="2" required></textarea></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn">Comment</button></form>`)
	})
}
