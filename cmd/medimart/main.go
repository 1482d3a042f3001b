package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/cart"
	"github.com/medimart/medimart/internal/config"
	"github.com/medimart/medimart/internal/lifecycle"
	"github.com/medimart/medimart/internal/logger"
	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/routeguard"
	"github.com/medimart/medimart/internal/session"
	sessionConfig "github.com/medimart/medimart/internal/session/config"
	"github.com/medimart/medimart/internal/state"
	"github.com/medimart/medimart/internal/transport"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.GetConfig()

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}

	storage, err := newStorage(cfg.Session)
	if err != nil {
		return err
	}

	// порядок сборки: клиент получает отложенный обработчик 401,
	// менеджер сессии зеркалит cookie в клиента
	relay := &authFailureRelay{}
	navigator := newNavigator()
	client := transport.NewClient(cfg.Transport, storage, relay, navigator, zaplog)
	manager := session.NewManager(storage, client, zaplog)
	navigator.manager = manager

	notifier := stdoutNotifier{}
	authState := state.NewAuth(api.NewAuth(client), manager, notifier)
	relay.handler = authState

	customerState := state.NewCustomer(api.NewCustomer(client), notifier)
	vendorState := state.NewVendor(api.NewVendor(client), notifier)
	volunteerState := state.NewVolunteer(api.NewVolunteer(client), notifier)
	adminState := state.NewAdmin(api.NewAdmin(client), notifier)

	// восстановление сессии и переход на домашний маршрут роли
	sess := authState.InitializeAuth()
	if sess.IsAuthenticated {
		navigator.Navigate(routeguard.HomeRoute(sess.User.AccountType))
	}

	ctx := context.Background()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return errors.New("usage: medimart login <email> <password>")
		}
		if err := authState.Login(ctx, args[1], args[2]); err != nil {
			return nil // ошибка уже показана уведомлением
		}
		navigator.Navigate(routeguard.HomeRoute(authState.Session().User.AccountType))
		return nil

	case "logout":
		authState.Logout(false)
		navigator.Navigate(routeguard.RouteLogin)
		return nil

	case "register":
		if len(args) != 5 {
			return errors.New("usage: medimart register <name> <email> <password> <role>")
		}
		_ = authState.Register(ctx, api.RegisterRequest{
			Name:            args[1],
			Email:           args[2],
			Password:        args[3],
			ConfirmPassword: args[3],
			AccountType:     model.Role(args[4]),
		})
		return nil

	case "medicines":
		search := ""
		if len(args) > 1 {
			search = args[1]
		}
		if err := customerState.SearchMedicines(ctx, search); err != nil {
			return nil
		}
		for _, m := range customerState.Medicines() {
			fmt.Printf("%s\t%.2f\t(stock %d)\t%s\n", m.MedicineName, m.SellingPrice, m.Stock, m.PharmacyName)
		}
		return nil

	case "order":
		// заказ в одну позицию, самовывоз: корзина собирает запрос
		if len(args) != 6 {
			return errors.New("usage: medimart order <pharmacyId> <medicine> <price> <qty> <phone>")
		}
		price, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[4])
		if err != nil {
			return err
		}

		basket := cart.New()
		if err := basket.Add(
			model.Pharmacy{ID: args[1]},
			model.Medicine{MedicineName: args[2], SellingPrice: price},
			qty,
		); err != nil {
			notifier.Error(err.Error())
			return nil
		}
		requests, err := basket.Checkout(ctx, cart.CheckoutForm{
			DeliveryType:  model.DeliveryTypePickup,
			Phone:         args[5],
			PaymentMethod: cart.PaymentCOD,
		}, nil)
		if err != nil {
			notifier.Error(err.Error())
			return nil
		}
		for _, req := range requests {
			if err := customerState.PlaceOrder(ctx, req); err != nil {
				return nil
			}
		}
		basket.Clear()
		return nil

	case "orders":
		return showOrders(ctx, authState, customerState, vendorState, volunteerState)

	case "track":
		if len(args) != 2 {
			return errors.New("usage: medimart track <orderId>")
		}
		if err := customerState.TrackOrder(ctx, args[1]); err != nil {
			return nil
		}
		printTimeline(*customerState.CurrentOrder())
		return nil

	case "pending":
		if err := adminState.FetchPendingPharmacies(ctx); err != nil {
			return nil
		}
		if err := adminState.FetchPendingVolunteers(ctx); err != nil {
			return nil
		}
		for _, p := range adminState.PendingPharmacies() {
			fmt.Printf("pharmacy\t%s\t%s\n", p.ID, p.Name)
		}
		for _, v := range adminState.PendingVolunteers() {
			fmt.Printf("volunteer\t%s\t%s\n", v.ID, v.Name)
		}
		return nil

	default:
		usage()
		return nil
	}
}

// showOrders показывает заказы в разрезе роли текущей сессии
func showOrders(ctx context.Context, authState *state.Auth, customerState *state.Customer, vendorState *state.Vendor, volunteerState *state.Volunteer) error {
	sess := authState.Session()
	if !sess.IsAuthenticated {
		return errors.New("not logged in")
	}

	var orders []model.Order
	switch sess.User.AccountType {
	case model.RoleVendor:
		if err := vendorState.FetchOrders(ctx); err != nil {
			return nil
		}
		orders = vendorState.Orders()
	case model.RoleVolunteer:
		if err := volunteerState.FetchDeliveries(ctx); err != nil {
			return nil
		}
		orders = volunteerState.Deliveries()
	default:
		if err := customerState.FetchOrders(ctx); err != nil {
			return nil
		}
		orders = customerState.Orders()
	}

	for _, order := range orders {
		fmt.Printf("%s\t%s\t%.2f\t%s\n",
			order.ID,
			lifecycle.StatusLabel(order.Status),
			order.Total,
			order.DeliveryType)
	}
	return nil
}

func printTimeline(order model.Order) {
	switch lifecycle.RenderMode(order) {
	case lifecycle.RenderingCancelled:
		fmt.Printf("order %s: %s\n", order.ID, lifecycle.StatusLabel(model.OrderStatusCancelled))
		return
	case lifecycle.RenderingUnknown:
		fmt.Printf("order %s: in progress\n", order.ID)
		return
	}

	current := lifecycle.CurrentStepIndex(order)
	for i, step := range lifecycle.Timeline(order.DeliveryType) {
		mark := " "
		if lifecycle.StepCompleted(order, i) || i == current {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, step.Label)
	}
	fmt.Printf("progress: %d%%\n", lifecycle.Progress(order))
}

func newStorage(cfg sessionConfig.Config) (session.Storage, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return session.NewSqliteStorage(cfg.StoragePath)
	default:
		return session.NewFileStorage(cfg.StoragePath), nil
	}
}

func usage() {
	fmt.Println("usage: medimart [flags] <login|logout|register|medicines|order|orders|track|pending> ...")
}

// authFailureRelay разрывает цикл сборки: клиент создаётся раньше
// среза auth, обработчик подставляется позже
type authFailureRelay struct {
	mu      sync.Mutex
	handler transport.AuthFailureHandler
}

func (r *authFailureRelay) HandleAuthFailure() {
	r.mu.Lock()
	handler := r.handler
	r.mu.Unlock()
	if handler != nil {
		handler.HandleAuthFailure()
	}
}

// navigator — клиентская "навигация": текущий маршрут плюс
// проверка каждого перехода через routeguard
type navigator struct {
	mu      sync.Mutex
	route   string
	manager *session.Manager
}

func newNavigator() *navigator {
	return &navigator{route: routeguard.RouteRoot}
}

func (n *navigator) CurrentRoute() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

func (n *navigator) Navigate(route string) {
	var isAuthenticated bool
	var role model.Role
	if n.manager != nil {
		sess := n.manager.Session()
		isAuthenticated = sess.IsAuthenticated
		if sess.User != nil {
			role = sess.User.AccountType
		}
	}

	decision := routeguard.Resolve(isAuthenticated, role, route)
	n.mu.Lock()
	defer n.mu.Unlock()
	if decision.Allow {
		n.route = route
		return
	}
	n.route = decision.RedirectTo
}

type stdoutNotifier struct{}

func (stdoutNotifier) Success(message string) {
	fmt.Println("[ok] " + message)
}

func (stdoutNotifier) Error(message string) {
	fmt.Println("[error] " + message)
}
