package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"storegate/entities"
	"storegate/models"
	"storegate/services"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

type Handler struct {
	aus services.AuthService
	cas services.CategoryService
	ps  services.ProductService
	ors services.OrderService
	us  services.UserService
	crs services.CartService
}

type HandlerParams struct {
	AuthService services.AuthService
	CatService  services.CategoryService
	PrdService  services.ProductService
	OrdService  services.OrderService
	UsrService  services.UserService
	CrtService  services.CartService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		aus: params.AuthService,
		cas: params.CatService,
		ps:  params.PrdService,
		ors: params.OrdService,
		us:  params.UsrService,
		crs: params.CrtService,
	}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	name := "guest"
	if s := h.aus.Session(); s.User != nil {
		name = s.User.FullName
	}
	w.Write([]byte("Hello, " + name + "!"))
}

// SessionState exposes the current session for page-level rendering
// decisions (role-conditional UI, error banners).
func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.aus.Session())
}

// auth

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	if err := decodeRequest(r, &creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.aus.LoginAdmin(r.Context(), creds); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, h.aus.Session())
}

func (h *Handler) UserLogin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	if err := decodeRequest(r, &creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.aus.LoginUser(r.Context(), creds); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, h.aus.Session())
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req := models.RegisterRequest{}
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.aus.Register(r.Context(), req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, h.aus.Session())
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.aus.Logout()
	w.WriteHeader(http.StatusOK)
}

// categories

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondList(w, func() ([]entities.Category, error) {
		return h.cas.FetchCategories(r.Context())
	}, h.cas.Store().Snapshot)
}

func (h *Handler) GetStoreCategories(w http.ResponseWriter, r *http.Request) {
	respondList(w, func() ([]entities.Category, error) {
		return h.cas.FetchStoreCategories(r.Context())
	}, h.cas.Store().Snapshot)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cat, err := h.cas.CreateCategory(r.Context(), req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var req models.CategoryRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cat, err := h.cas.UpdateCategory(r.Context(), id, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, cat)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cas.DeleteCategory(r.Context(), id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// products

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	respondList(w, func() ([]entities.Product, error) {
		return h.ps.FetchProducts(r.Context())
	}, h.ps.Store().Snapshot)
}

func (h *Handler) GetStoreProducts(w http.ResponseWriter, r *http.Request) {
	respondList(w, func() ([]entities.Product, error) {
		return h.ps.FetchStoreProducts(r.Context())
	}, h.ps.Store().Snapshot)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, err := h.ps.CreateProduct(r.Context(), req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prod)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var req models.ProductRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, err := h.ps.UpdateProduct(r.Context(), id, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prod)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.ps.DeleteProduct(r.Context(), id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UploadProductImage accepts a multipart form with an "image" part and
// returns the hosted URL.
func (h *Handler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.ps.UploadImage(r.Context(), file)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]string{"imageUrl": url})
}

// orders

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	respondList(w, func() ([]entities.Order, error) {
		return h.ors.FetchOrders(r.Context())
	}, h.ors.Store().Snapshot)
}

func (h *Handler) GetOrderById(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	order, err := h.ors.FetchOrderById(r.Context(), id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status" schema:"status"`
	}
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	order, err := h.ors.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.ors.DeleteOrder(r.Context(), id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// cart

const cartCookie = "cartSessionId"

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(cartCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			writeJSON(w, map[string]any{"items": []any{}, "totalPrice": 0})
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	view, err := h.crs.GetCartView(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, view)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var cartId string
	c, err := r.Cookie(cartCookie)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		cartId, err = h.crs.CreateCartSession()
		if err != nil {
			WriteErrorResponse(w, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:    cartCookie,
			Value:   cartId,
			Path:    "/",
			Expires: time.Now().Add(24 * time.Hour),
		})
	} else {
		cartId = c.Value
	}

	if err := h.crs.AddItem(cartId, req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	c, err := r.Cookie(cartCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if err := h.crs.RemoveItem(c.Value, req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	c, err := r.Cookie(cartCookie)
	if err != nil {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	}
	checkout, err := h.crs.Checkout(c.Value, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	order, err := h.ors.PlaceOrder(r.Context(), checkout)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if err := h.crs.ClearCart(c.Value); err != nil {
		log.Printf("Checkout: %v", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:    cartCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	writeJSON(w, order)
}

// users

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	respondList(w, func() ([]entities.User, error) {
		return h.us.FetchUsers(r.Context())
	}, h.us.Store().Snapshot)
}

func (h *Handler) GetUserById(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	user, err := h.us.FetchUserById(r.Context(), id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, user)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	user, err := h.us.CreateUser(r.Context(), req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var req models.UserRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	user, err := h.us.UpdateUser(r.Context(), id, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.us.DeleteUser(r.Context(), id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return h.guardMiddleware(next, AdminGuard)
}

func (h *Handler) UserAuthMiddleware(next http.Handler) http.Handler {
	return h.guardMiddleware(next, PrivateGuard)
}

func (h *Handler) PublicOnlyMiddleware(next http.Handler) http.Handler {
	return h.guardMiddleware(next, PublicOnlyGuard)
}

func (h *Handler) guardMiddleware(next http.Handler, guard func(entities.Session) GuardDecision) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := guard(h.aus.Session())
		switch decision.State {
		case GuardChecking:
			writeJSON(w, map[string]bool{"loading": true})
		case GuardDenied:
			http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// helpers

// respondList serves the freshly fetched list, or falls back to the
// store's last-known-good data with the error attached when the fetch
// fails. A stale table with an error banner beats a blank screen.
func respondList[T any](w http.ResponseWriter, fetch func() ([]T, error), snapshot func() ([]T, bool, string)) {
	items, err := fetch()
	if err == nil {
		writeJSON(w, items)
		return
	}
	stale, _, errMsg := snapshot()
	writeJSON(w, map[string]any{
		"items": stale,
		"error": errMsg,
	})
}

func pathId(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	return strconv.Atoi(vars["id"])
}

func decodeRequest(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		var err error
		if strings.HasPrefix(ct, "multipart/form-data") {
			err = r.ParseMultipartForm(10 << 20)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			log.Printf("decodeRequest: %v", err)
			return err
		}
		if err := formDecoder.Decode(dst, r.PostForm); err != nil {
			log.Printf("decodeRequest: %v", err)
			return err
		}
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("Unmarshal err:%v", err)
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		body, _ := json.MarshalIndent(map[string]any{
			"success": false,
			"message": vErr.Message,
			"errors":  vErr.Fields,
		}, "", "  ")
		w.Write(body)
		return
	}
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
