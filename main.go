package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"storegate/config"
	"storegate/entities"
	"storegate/handlers"
	"storegate/repository"
	"storegate/services"
	"storegate/state"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	if cfg.APIBaseURL == "" {
		log.Fatal("env API_BASE_URL must be set")
	}

	client, err := repository.NewBackendClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		panic(err)
	}

	sessionRepo, cartRepo := initStores(cfg)

	var snapRepo repository.SnapshotRepository
	snapRepo, err = repository.NewSnapshotRepository(cfg.SnapshotDB)
	if err != nil {
		log.Printf("snapshot store unavailable: %v", err)
		snapRepo = nil
	}

	var imgRepo repository.ImageRepository
	if cfg.CloudinaryURL != "" {
		imgRepo, err = repository.NewImageRepository(cfg.CloudinaryURL)
		if err != nil {
			panic(err)
		}
		log.Printf("image host connected")
	}

	authRepo, _ := repository.NewAuthRepository(client)
	catRepo, _ := repository.NewCategoryRepository(client)
	prodRepo, _ := repository.NewProductRepository(client)
	orderRepo, _ := repository.NewOrderRepository(client)
	userRepo, _ := repository.NewUserRepository(client)

	authStore := state.NewAuthStore()
	catStore := state.NewEntityStore(func(c entities.Category) int { return c.Id })
	prodStore := state.NewEntityStore(func(p entities.Product) int { return p.Id })
	orderStore := state.NewEntityStore(func(o entities.Order) int { return o.Id })
	userStore := state.NewEntityStore(func(u entities.User) int { return u.Id })

	aus := services.NewAuthService(authRepo, sessionRepo, client, authStore)
	cas := services.NewCategoryService(catRepo, catStore, snapRepo)
	ps := services.NewProductService(prodRepo, imgRepo, prodStore, snapRepo)
	ors := services.NewOrderService(orderRepo, orderStore, snapRepo)
	us := services.NewUserService(userRepo, userStore)
	crs := services.NewCartService(cartRepo, prodStore)

	// Start from the last persisted state: stale lists and, when the
	// session mirror is populated, an already-authenticated session.
	cas.Hydrate()
	ps.Hydrate()
	ors.Hydrate()
	aus.CheckAuthState()

	ha := handlers.NewHandler(handlers.HandlerParams{
		AuthService: aus,
		CatService:  cas,
		PrdService:  ps,
		OrdService:  ors,
		UsrService:  us,
		CrtService:  crs,
	})

	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)

	subAdmin := router.NewRoute().Subrouter()
	subAdmin.Use(ha.AdminAuthMiddleware)
	subUser := router.NewRoute().Subrouter()
	subUser.Use(ha.UserAuthMiddleware)
	subPublic := router.NewRoute().Subrouter()
	subPublic.Use(ha.PublicOnlyMiddleware)

	router.HandleFunc("/", ha.Welcome)
	router.HandleFunc("/session", ha.SessionState)

	subPublic.HandleFunc("/admin/login", ha.AdminLogin).Methods("POST")
	subPublic.HandleFunc("/login", ha.UserLogin).Methods("POST")
	subPublic.HandleFunc("/register", ha.Register).Methods("POST")
	router.HandleFunc("/logout", ha.Logout).Methods("POST")

	// storefront
	router.HandleFunc("/categories", ha.GetStoreCategories).Methods("GET")
	router.HandleFunc("/products", ha.GetStoreProducts).Methods("GET")
	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	subUser.HandleFunc("/cart/checkout", ha.Checkout).Methods("POST")
	subUser.HandleFunc("/orders/{id:[0-9]+}", ha.GetOrderById).Methods("GET")

	// back office
	subAdmin.HandleFunc("/admin/categories", ha.GetCategories).Methods("GET")
	subAdmin.HandleFunc("/admin/categories", ha.CreateCategory).Methods("POST")
	subAdmin.HandleFunc("/admin/categories/{id:[0-9]+}", ha.UpdateCategory).Methods("PUT")
	subAdmin.HandleFunc("/admin/categories/{id:[0-9]+}", ha.DeleteCategory).Methods("DELETE")

	subAdmin.HandleFunc("/admin/products", ha.GetProducts).Methods("GET")
	subAdmin.HandleFunc("/admin/products", ha.CreateProduct).Methods("POST")
	subAdmin.HandleFunc("/admin/products/{id:[0-9]+}", ha.UpdateProduct).Methods("PUT")
	subAdmin.HandleFunc("/admin/products/{id:[0-9]+}", ha.DeleteProduct).Methods("DELETE")
	subAdmin.HandleFunc("/admin/products/image", ha.UploadProductImage).Methods("POST")

	subAdmin.HandleFunc("/admin/orders", ha.GetOrders).Methods("GET")
	subAdmin.HandleFunc("/admin/orders/{id:[0-9]+}", ha.GetOrderById).Methods("GET")
	subAdmin.HandleFunc("/admin/orders/{id:[0-9]+}/status", ha.SetOrderStatus).Methods("PATCH")
	subAdmin.HandleFunc("/admin/orders/{id:[0-9]+}", ha.DeleteOrder).Methods("DELETE")

	subAdmin.HandleFunc("/admin/users", ha.GetUsers).Methods("GET")
	subAdmin.HandleFunc("/admin/users", ha.CreateUser).Methods("POST")
	subAdmin.HandleFunc("/admin/users/{id:[0-9]+}", ha.GetUserById).Methods("GET")
	subAdmin.HandleFunc("/admin/users/{id:[0-9]+}", ha.UpdateUser).Methods("PUT")
	subAdmin.HandleFunc("/admin/users/{id:[0-9]+}", ha.DeleteUser).Methods("DELETE")

	log.Printf("starting server on %s...", cfg.ListenAddr)
	http.ListenAndServe(cfg.ListenAddr, router)
}

func initStores(cfg config.Config) (repository.SessionRepository, repository.CartRepository) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
		defer cncl()
		if status := rdb.Ping(ctx); status.Err() != nil {
			panic("redis is not working: " + status.Err().Error())
		}
		sessionRepo, err := repository.NewRedisSessionRepository(rdb, context.Background())
		if err != nil {
			panic(err)
		}
		cartRepo, err := repository.NewCartRepository(rdb, context.Background())
		if err != nil {
			panic(err)
		}
		log.Printf("redis connected")
		return sessionRepo, cartRepo
	}

	sessionRepo, err := repository.NewFileSessionRepository(cfg.SessionFile)
	if err != nil {
		panic(err)
	}
	return sessionRepo, repository.NewMemoryCartRepository()
}
