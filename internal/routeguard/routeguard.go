package routeguard

import (
	"strings"

	"github.com/medimart/medimart/internal/model"
)

// Маршруты, доступные без авторизации
const (
	RouteRoot     = "/"
	RouteLogin    = "/login"
	RouteRegister = "/register"
)

// Decision — результат проверки маршрута:
// либо пропустить, либо редирект
type Decision struct {
	Allow      bool
	RedirectTo string
}

var homeRoutes = map[model.Role]string{
	model.RoleCustomer:  "/customer/dashboard",
	model.RoleVendor:    "/vendor/dashboard",
	model.RoleVolunteer: "/volunteer/dashboard",
	model.RoleAdmin:     "/admin/dashboard",
}

// Префиксы маршрутов, закреплённые за ролью.
// Корзина, оформление и трекинг — часть покупательского поддерева
var rolePrefixes = map[model.Role][]string{
	model.RoleCustomer:  {"/customer", "/cart", "/checkout", "/track"},
	model.RoleVendor:    {"/vendor"},
	model.RoleVolunteer: {"/volunteer"},
	model.RoleAdmin:     {"/admin"},
}

func HomeRoute(role model.Role) string {
	if home, ok := homeRoutes[role]; ok {
		return home
	}
	return RouteLogin
}

// Resolve — чистая функция (авторизован, роль, маршрут) -> решение.
// Аноним на защищённом маршруте уходит на логин,
// чужая роль — на свою домашнюю страницу
func Resolve(isAuthenticated bool, role model.Role, route string) Decision {
	switch route {
	case RouteLogin, RouteRegister:
		if isAuthenticated {
			return Decision{RedirectTo: HomeRoute(role)}
		}
		return Decision{Allow: true}
	case RouteRoot:
		return Decision{Allow: true}
	}

	if !isAuthenticated {
		return Decision{RedirectTo: RouteLogin}
	}

	owner, restricted := routeOwner(route)
	if restricted && owner != role {
		return Decision{RedirectTo: HomeRoute(role)}
	}

	// общие маршруты авторизованной зоны (профиль и т.п.)
	return Decision{Allow: true}
}

func routeOwner(route string) (model.Role, bool) {
	for role, prefixes := range rolePrefixes {
		for _, prefix := range prefixes {
			if route == prefix || strings.HasPrefix(route, prefix+"/") {
				return role, true
			}
		}
	}
	return "", false
}
