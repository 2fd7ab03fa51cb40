package pages

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Home renders the public landing page
func Home(title, flash string) templ.Component {
	return publicPage(title, flash, func(w io.Writer) {
		fmt.Fprint(w, `<section class="hero text-center py-16">`)
		fmt.Fprint(w, `<h1 class="text-3xl font-bold">Barangay Portal</h1>`)
		fmt.Fprint(w, `<p class="mt-2 text-gray-600">File complaints, request assistance, and stay connected with your barangay.</p>`)
		fmt.Fprint(w, `<div class="mt-6 flex justify-center gap-4">`)
		fmt.Fprint(w, `<a href="/login" class="btn btn-primary">Resident Login</a>`)
		fmt.Fprint(w, `<a href="/register" class="btn">Register</a>`)
		fmt.Fprint(w, `<a href="/staff/login" class="btn btn-ghost">Staff Login</a>`)
		fmt.Fprint(w, `</div></section>`)
	})
}

// Login renders the resident login form
func Login(title, flash string) templ.Component {
	return publicPage(title, flash, func(w io.Writer) {
		fmt.Fprint(w, `<div class="auth-card mx-auto max-w-md"><h1 class="text-xl font-semibold">Resident Login</h1>`)
		fmt.Fprint(w, `<form method="post" action="/login" class="mt-4 space-y-4">`)
		fmt.Fprint(w, `<label>Email<input type="email" name="email" required></label>`)
		fmt.Fprint(w, `<label>Password<input type="password" name="password" required></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary w-full">Log In</button>`)
		fmt.Fprint(w, `</form>`)
		fmt.Fprint(w, `<p class="mt-4 text-sm">No account yet? <a href="/register">Register here</a></p></div>`)
	})
}

// Register renders the resident registration form
func Register(title, flash string) templ.Component {
	return publicPage(title, flash, func(w io.Writer) {
		fmt.Fprint(w, `<div class="auth-card mx-auto max-w-lg"><h1 class="text-xl font-semibold">Create Your Account</h1>`)
		fmt.Fprint(w, `<form method="post" action="/register" class="mt-4 space-y-4">`)
		fmt.Fprint(w, `<div class="grid grid-cols-2 gap-4">`)
		fmt.Fprint(w, `<label>First Name<input type="text" name="first_name" required></label>`)
		fmt.Fprint(w, `<label>Middle Name<input type="text" name="middle_name"></label>`)
		fmt.Fprint(w, `<label>Last Name<input type="text" name="last_name" required></label>`)
		fmt.Fprint(w, `<label>Suffix<input type="text" name="suffix" placeholder="Jr., Sr., III"></label>`)
		fmt.Fprint(w, `</div>`)
		fmt.Fprint(w, `<label>Email<input type="email" name="email" required></label>`)
		fmt.Fprint(w, `<label>Phone<input type="tel" name="phone" placeholder="09XXXXXXXXX"></label>`)
		fmt.Fprint(w, `<label>Address<input type="text" name="address" required></label>`)
		fmt.Fprint(w, `<label>Password<input type="password" name="password" minlength="8" required></label>`)
		fmt.Fprint(w, `<label>Confirm Password<input type="password" name="confirm_password" minlength="8" required></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary w-full">Register</button>`)
		fmt.Fprint(w, `</form>`)
		fmt.Fprint(w, `<p class="mt-4 text-sm text-gray-500">Your account will be reviewed and verified by the barangay office before you can log in.</p></div>`)
	})
}

// StaffLogin renders the staff and admin login form
func StaffLogin(title, flash string) templ.Component {
	return publicPage(title, flash, func(w io.Writer) {
		fmt.Fprint(w, `<div class="auth-card mx-auto max-w-md"><h1 class="text-xl font-semibold">Staff Login</h1>`)
		fmt.Fprint(w, `<form method="post" action="/staff/login" class="mt-4 space-y-4">`)
		fmt.Fprint(w, `<label>Username<input type="text" name="username" required></label>`)
		fmt.Fprint(w, `<label>Password<input type="password" name="password" required></label>`)
		fmt.Fprint(w, `<button type="submit" class="btn btn-primary w-full">Log In</button>`)
		fmt.Fprint(w, `</form></div>`)
	})
}
