package session

// Route names a top-level area of the app.
type Route string

const (
	RouteSignIn Route = "sign-in"
	RouteHome   Route = "home"
)

// Navigator switches the presentation layer to a top-level area.
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route Route)

func (f NavigatorFunc) Navigate(route Route) {
	f(route)
}

type noopNavigator struct{}

func (noopNavigator) Navigate(Route) {}
