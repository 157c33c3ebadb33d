package handlers

import "storegate/entities"

// Route guards are pure functions of the current Session; they perform no
// I/O. Middleware translates a decision into pass-through, a redirect, or
// a transient "still checking" response.

type GuardState int

const (
	GuardChecking GuardState = iota
	GuardGranted
	GuardDenied
)

type GuardDecision struct {
	State    GuardState
	Redirect string
}

const (
	adminLoginRoute = "/admin/login"
	userLoginRoute  = "/login"
	homeRoute       = "/"
)

// AdminGuard gates the back office. It checks authentication only; the
// admin login endpoint issues the admin token, so a customer session never
// reaches these routes with a usable token. Role display stays a page
// concern.
func AdminGuard(s entities.Session) GuardDecision {
	if s.IsLoading {
		return GuardDecision{State: GuardChecking}
	}
	if s.IsAuthenticated {
		return GuardDecision{State: GuardGranted}
	}
	return GuardDecision{State: GuardDenied, Redirect: adminLoginRoute}
}

// PrivateGuard gates storefront routes that need a signed-in customer.
func PrivateGuard(s entities.Session) GuardDecision {
	if s.IsLoading {
		return GuardDecision{State: GuardChecking}
	}
	if s.IsAuthenticated {
		return GuardDecision{State: GuardGranted}
	}
	return GuardDecision{State: GuardDenied, Redirect: userLoginRoute}
}

// PublicOnlyGuard keeps signed-in visitors off the login/register pages so
// they cannot re-submit credentials.
func PublicOnlyGuard(s entities.Session) GuardDecision {
	if s.IsLoading {
		return GuardDecision{State: GuardChecking}
	}
	if !s.IsAuthenticated {
		return GuardDecision{State: GuardGranted}
	}
	return GuardDecision{State: GuardDenied, Redirect: homeRoute}
}
