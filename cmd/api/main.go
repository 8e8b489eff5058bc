package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "shopflow/docs"
	"shopflow/pkg/customer"
	custpg "shopflow/pkg/customer/postgres"
	"shopflow/pkg/logger"
	"shopflow/pkg/order"
	orderpg "shopflow/pkg/order/postgres"
	"shopflow/pkg/otel"
	"shopflow/pkg/product"
	productpg "shopflow/pkg/product/postgres"
)

var (
	redisClient *redis.Client
	svc         *order.Service
	orders      order.Repository
	products    product.Repository
	customers   customer.Repository
	log         *logger.Logger
	tracer      trace.Tracer
)

// @title ShopFlow API
// @version 1.0
// @description API for creating orders against shared product inventory
// @host localhost:8443
// @BasePath /
func main() {
	log = logger.New(os.Stdout, logger.LevelInfo, "shopflow", otel.GetTraceID)
	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "shopflow", Host: os.Getenv("OTEL_HOST"), Probability: 1.0})
	if err != nil {
		log.Error(context.Background(), "init tracing", "error", err)
		return
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer("shopflow")

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Error(context.Background(), "db connect", "error", err)
		os.Exit(1)
	}
	if err := bootstrap(db); err != nil {
		log.Error(context.Background(), "bootstrap schema", "error", err)
		os.Exit(1)
	}
	orders = orderpg.New(db)
	products = productpg.New(db)
	customers = custpg.New(db)
	svc = order.NewService(orders, products, customers)

	redisClient = redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDR")})

	r := mux.NewRouter()
	r.Use(traceMiddleware)
	r.HandleFunc("/login", loginHandler).Methods(http.MethodPost)

	api := r.PathPrefix("/orders").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("", createOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("", listOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/{id}", getOrderHandler).Methods(http.MethodGet)

	catalog := r.NewRoute().Subrouter()
	catalog.Use(authMiddleware)
	catalog.HandleFunc("/products/{id}", getProductHandler).Methods(http.MethodGet)
	catalog.HandleFunc("/customers/{id}", getCustomerHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	log.Info(context.Background(), "listening", "addr", ":8443")
	if err := http.ListenAndServeTLS(":8443", "certs/server.crt", "certs/server.key", r); err != nil {
		log.Error(context.Background(), "server closed", "error", err)
	}
}

func bootstrap(db *sql.DB) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS customers (id TEXT PRIMARY KEY, name TEXT, email TEXT)",
		"CREATE TABLE IF NOT EXISTS products (id TEXT PRIMARY KEY, name TEXT, unit_price NUMERIC NOT NULL, available_quantity INT NOT NULL CHECK (available_quantity >= 0))",
		"CREATE TABLE IF NOT EXISTS orders (id TEXT PRIMARY KEY, customer_id TEXT NOT NULL REFERENCES customers(id))",
		"CREATE TABLE IF NOT EXISTS order_lines (id TEXT PRIMARY KEY, order_id TEXT NOT NULL REFERENCES orders(id), position INT NOT NULL, product_id TEXT NOT NULL REFERENCES products(id), quantity INT NOT NULL, unit_price NUMERIC NOT NULL)",
		"INSERT INTO customers (id,name,email) VALUES ('C1','Ada','ada@example.com') ON CONFLICT (id) DO NOTHING",
		"INSERT INTO products (id,name,unit_price,available_quantity) VALUES ('P1','Widget',5.00,10),('P2','Gadget',2.50,3) ON CONFLICT (id) DO NOTHING",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// loginHandler handles user login and session creation.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Produce json
// @Param creds body loginRequest true "Credentials"
// @Success 200
// @Router /login [post]
func loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}
	sid := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := redisClient.Set(ctx, "session:"+sid, req.Username, time.Hour).Err(); err != nil {
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session_id", Value: sid, Path: "/", Expires: time.Now().Add(time.Hour), HttpOnly: true})
	w.WriteHeader(http.StatusOK)
}

// authMiddleware ensures a valid session exists.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_id")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		user, err := redisClient.Get(r.Context(), "session:"+c.Value).Result()
		if err != nil || user == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), "user", user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// createOrderHandler creates a new order through the creation workflow.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body createOrderRequest true "Order request"
// @Success 201 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders [post]
func createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := svc.CreateOrder(ctx, req.CustomerID, req.Lines)
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(o)
}

// writeOrderError maps workflow error kinds to HTTP statuses. Infrastructure
// errors stay 500 and are logged; business kinds are the caller's to fix.
func writeOrderError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrCustomerNotFound),
		errors.Is(err, order.ErrNoProductsFound),
		errors.Is(err, order.ErrProductNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrStockRaceLost):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error(ctx, "create order", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// listOrdersHandler lists orders.
// @Summary List orders
// @Produce json
// @Success 200 {array} order.Order
// @Security ApiKeyAuth
// @Router /orders [get]
func listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	out, err := orders.List(ctx)
	if err != nil {
		log.Error(ctx, "list orders", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// getOrderHandler retrieves an order by ID.
// @Summary Get order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	o, err := orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error(ctx, "get order", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(o)
}

// getProductHandler retrieves a product by ID.
// @Summary Get product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} product.Product
// @Security ApiKeyAuth
// @Router /products/{id} [get]
func getProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getProductHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	found, err := products.FindAllByID(ctx, []string{id})
	if err != nil {
		log.Error(ctx, "get product", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(found) == 0 {
		http.NotFound(w, r)
		return
	}
	json.NewEncoder(w).Encode(found[0])
}

// getCustomerHandler retrieves a customer by ID.
// @Summary Get customer
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} customer.Customer
// @Security ApiKeyAuth
// @Router /customers/{id} [get]
func getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCustomerHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	c, err := customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error(ctx, "get customer", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loginRequest represents login credentials.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// createOrderRequest is the POST /orders payload.
type createOrderRequest struct {
	CustomerID string              `json:"customer_id"`
	Lines      []order.LineRequest `json:"lines"`
}
