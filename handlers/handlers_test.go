package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"canteen-api/cart"
	"canteen-api/handlers"
	"canteen-api/models"
	"canteen-api/routes"
	"canteen-api/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.MenuItem{}, &models.Portion{}, &models.ItemWindow{},
		&models.Order{}, &models.OrderLine{}, &models.OrderStatusHistory{},
		&models.PasswordResetRequest{}, &models.Feedback{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	carts := cart.NewStore()
	accounts := services.NewAccountService(db)
	orders := services.NewOrderService(db, carts, 0.05)

	r := gin.New()
	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(accounts),
		Menu:      handlers.NewMenuHandler(services.NewCatalogService(db)),
		Cart:      handlers.NewCartHandler(services.NewCartService(db, carts)),
		Orders:    handlers.NewOrderHandler(orders),
		Accounts:  handlers.NewAccountHandler(accounts),
		Feedback:  handlers.NewFeedbackHandler(services.NewFeedbackService(db)),
		Recommend: handlers.NewRecommendHandler(orders, nil),
	})
	return r, db
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func registerAndLogin(t *testing.T, r *gin.Engine, db *gorm.DB, name string, role models.UserRole) string {
	t.Helper()
	email := name + "@canteen.test"
	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", name, w.Code, w.Body.String())
	}
	if role != models.RoleCustomer {
		if err := db.Model(&models.User{}).Where("email = ?", email).Update("role", role).Error; err != nil {
			t.Fatalf("promote %s: %v", name, err)
		}
		// re-login so the token carries the new role
		w = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret123"})
		if w.Code != http.StatusOK {
			t.Fatalf("login %s: %d", name, w.Code)
		}
	}
	return decode(t, w)["token"].(string)
}

func TestOrderFlowOverHTTP(t *testing.T) {
	r, db := newTestRouter(t)
	customerToken := registerAndLogin(t, r, db, "asha", models.RoleCustomer)
	staffToken := registerAndLogin(t, r, db, "meera", models.RoleAdmin)

	// staff create a menu item
	w := do(t, r, http.MethodPost, "/api/staff/menu", staffToken, gin.H{
		"name":        "Masala Dosa",
		"description": "Crispy rice pancake with spiced potatoes",
		"windows":     []string{"AllDay"},
		"portions":    []gin.H{{"name": "Full", "price": 150}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create item: %d %s", w.Code, w.Body.String())
	}

	// customers cannot reach staff routes
	if w := do(t, r, http.MethodPost, "/api/staff/menu", customerToken, gin.H{}); w.Code != http.StatusForbidden {
		t.Errorf("customer on staff route: %d, want 403", w.Code)
	}

	// public menu shows the item (AllDay is always in window)
	w = do(t, r, http.MethodGet, "/api/menu", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("menu: %d", w.Code)
	}
	if decode(t, w)["count"].(float64) != 1 {
		t.Error("expected 1 item on the public menu")
	}

	// build a cart and place the order
	w = do(t, r, http.MethodPost, "/api/customer/cart", customerToken, gin.H{
		"menu_item_id": 1, "portion_name": "Full", "quantity": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add to cart: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/customer/orders", customerToken, gin.H{"instructions": "no onions"})
	if w.Code != http.StatusCreated {
		t.Fatalf("place: %d %s", w.Code, w.Body.String())
	}
	placed := decode(t, w)
	order := placed["order"].(map[string]any)
	if order["total"].(float64) != 315 { // 300 + 5% tax
		t.Errorf("total = %v, want 315", order["total"])
	}
	if placed["cancellable"] != true {
		t.Error("fresh order must be cancellable")
	}
	code := order["code"].(string)

	// placing again with an empty cart fails
	if w := do(t, r, http.MethodPost, "/api/customer/orders", customerToken, nil); w.Code != http.StatusBadRequest {
		t.Errorf("empty cart place: %d, want 400", w.Code)
	}

	// staff confirm, deliver, settle
	for _, status := range []string{"Confirmed", "Delivered"} {
		w = do(t, r, http.MethodPut, "/api/staff/orders/"+code+"/status", staffToken, gin.H{"status": status})
		if w.Code != http.StatusOK {
			t.Fatalf("transition to %s: %d %s", status, w.Code, w.Body.String())
		}
	}
	if w := do(t, r, http.MethodPut, "/api/staff/orders/"+code+"/settle", staffToken, nil); w.Code != http.StatusOK {
		t.Fatalf("settle: %d %s", w.Code, w.Body.String())
	}

	// settled is terminal
	w = do(t, r, http.MethodPut, "/api/staff/orders/"+code+"/status", staffToken, gin.H{"status": "Pending"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("terminal transition: %d, want 422", w.Code)
	}

	// customer can rate the settled order
	w = do(t, r, http.MethodPost, "/api/customer/feedback", customerToken, gin.H{
		"order_code": code, "rating": 5, "comment": "lovely",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("feedback: %d %s", w.Code, w.Body.String())
	}

	// recommendations are disabled without a configured model
	if w := do(t, r, http.MethodPost, "/api/customer/recommendations", customerToken, nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("recommendations: %d, want 503", w.Code)
	}
}

func TestAccountAdminOverHTTP(t *testing.T) {
	r, db := newTestRouter(t)
	superToken := registerAndLogin(t, r, db, "root", models.RoleSuperAdmin)

	// duplicate registration is rejected
	do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"name": "asha", "email": "asha@canteen.test", "password": "secret123"})
	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"name": "asha2", "email": "asha@canteen.test", "password": "secret123"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: %d, want 409", w.Code)
	}

	// forgot-password files a request; superadmin resolves it
	w = do(t, r, http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "asha@canteen.test"})
	if w.Code != http.StatusOK || decode(t, w)["submitted"] != true {
		t.Fatalf("forgot password: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/superadmin/reset-requests", superToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list requests: %d", w.Code)
	}
	reqs := decode(t, w)["requests"].([]any)
	if len(reqs) != 1 {
		t.Fatalf("expected 1 reset request, got %d", len(reqs))
	}
	reqID := reqs[0].(map[string]any)["request_id"].(string)

	w = do(t, r, http.MethodPut, "/api/superadmin/reset-requests/"+reqID+"/resolve", superToken, gin.H{"password": "freshpass"})
	if w.Code != http.StatusOK {
		t.Fatalf("resolve: %d %s", w.Code, w.Body.String())
	}
	// second resolve: the request no longer exists
	w = do(t, r, http.MethodPut, "/api/superadmin/reset-requests/"+reqID+"/resolve", superToken, gin.H{"password": "another1"})
	if w.Code != http.StatusNotFound {
		t.Errorf("double resolve: %d, want 404", w.Code)
	}

	// the new secret works
	if w := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "asha@canteen.test", "password": "freshpass"}); w.Code != http.StatusOK {
		t.Errorf("login after reset: %d", w.Code)
	}

	// self-deletion is rejected
	var root models.User
	if err := db.Where("email = ?", "root@canteen.test").First(&root).Error; err != nil {
		t.Fatalf("find root: %v", err)
	}
	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/superadmin/accounts/%d", root.ID), superToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("self delete: %d, want 403", w.Code)
	}
}
