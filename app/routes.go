package app

type route int

const (
	routeWelcome route = iota
	routeLogin
	routeSignup
	routeHome
	routeAssessment
	routeLocation
	routeSettings
)

// tabRoutes are the routes of the tab shell, in tab order.
var tabRoutes = []route{routeHome, routeAssessment, routeLocation, routeSettings}

func (r route) String() string {
	switch r {
	case routeWelcome:
		return "Welcome"
	case routeLogin:
		return "Login"
	case routeSignup:
		return "Signup"
	case routeHome:
		return "Home"
	case routeAssessment:
		return "Assessment"
	case routeLocation:
		return "Location"
	case routeSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// isTab reports whether r lives in the tab shell.
func (r route) isTab() bool {
	return r.tabIndex() >= 0
}

func (r route) tabIndex() int {
	for i, t := range tabRoutes {
		if t == r {
			return i
		}
	}
	return -1
}

func tabNames() []string {
	names := make([]string, len(tabRoutes))
	for i, r := range tabRoutes {
		names[i] = r.String()
	}
	return names
}
