package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coderr/internal/database/dbtest"
	"coderr/internal/domain"
	"coderr/internal/middleware/middlewaretest"
	"coderr/internal/repository"
)

type fixture struct {
	db       *gorm.DB
	router   *gin.Engine
	business *domain.User
	customer *domain.User
	outsider *domain.User
	staff    *domain.User
	offer    *domain.Offer
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)

	f := &fixture{
		db:       db,
		business: dbtest.CreateUser(t, db, "biz", domain.RoleBusiness),
		customer: dbtest.CreateUser(t, db, "cust", domain.RoleCustomer),
		outsider: dbtest.CreateUser(t, db, "other", domain.RoleCustomer),
		staff:    dbtest.CreateUser(t, db, "admin", domain.RoleCustomer),
	}
	f.staff.IsStaff = true
	require.NoError(t, db.Model(f.staff).Update("is_staff", true).Error)
	f.offer = dbtest.CreateOffer(t, db, f.business.ID, "Logo", 100, 3)

	svc := NewService(
		repository.NewOrderRepository(db),
		repository.NewOfferRepository(db),
		repository.NewUserRepository(db),
	)
	f.router = middlewaretest.Router(f.business, f.customer, f.outsider, f.staff)
	NewHandler(svc).RegisterRoutes(f.router.Group("/api"))
	return f
}

func (f *fixture) placeOrder(t *testing.T, detailID int64) OrderResponse {
	t.Helper()
	w := middlewaretest.Do(f.router, http.MethodPost, "/api/orders/", f.customer, gin.H{"offer_detail_id": detailID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func orderPath(id int64) string {
	return "/api/orders/" + strconv.FormatInt(id, 10) + "/"
}

func TestCreate_SnapshotsDetail(t *testing.T) {
	f := setup(t)
	d := f.offer.Details[1]

	out := f.placeOrder(t, d.ID)
	assert.Equal(t, f.customer.ID, out.CustomerUser)
	assert.Equal(t, f.business.ID, out.BusinessUser)
	assert.Equal(t, d.Title, out.Title)
	assert.Equal(t, "150.00", out.Price)
	assert.Equal(t, "standard", out.OfferType)
	assert.Equal(t, "in_progress", out.Status)
	assert.Equal(t, []string{"feature standard"}, out.Features)

	// later edits to the tier and removal of the offer do not reach the order
	require.NoError(t, f.db.Model(&domain.OfferDetail{}).Where("id = ?", d.ID).
		Updates(map[string]any{"price": decimal.NewFromInt(999), "title": "changed"}).Error)
	require.NoError(t, repository.NewOfferRepository(f.db).Delete(t.Context(), f.offer.ID))

	w := middlewaretest.Do(f.router, http.MethodGet, orderPath(out.ID), f.customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var again OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, "150.00", again.Price)
	assert.Equal(t, d.Title, again.Title)
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)

	w := middlewaretest.Do(f.router, http.MethodPost, "/api/orders/", f.business, gin.H{"offer_detail_id": f.offer.Details[0].ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = middlewaretest.Do(f.router, http.MethodPost, "/api/orders/", nil, gin.H{"offer_detail_id": f.offer.Details[0].ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = middlewaretest.Do(f.router, http.MethodPost, "/api/orders/", f.customer, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "offer_detail_id")

	w = middlewaretest.Do(f.router, http.MethodPost, "/api/orders/", f.customer, gin.H{"offer_detail_id": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = middlewaretest.Do(f.router, http.MethodPost, "/api/orders/", f.customer, gin.H{"offer_detail_id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var n int64
	require.NoError(t, f.db.Model(&domain.Order{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestListAndRetrieve_ScopedToParticipants(t *testing.T) {
	f := setup(t)
	first := f.placeOrder(t, f.offer.Details[0].ID)
	f.placeOrder(t, f.offer.Details[2].ID)

	for _, u := range []*domain.User{f.customer, f.business} {
		w := middlewaretest.Do(f.router, http.MethodGet, "/api/orders/", u, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []OrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 2, u.Username)
	}

	w := middlewaretest.Do(f.router, http.MethodGet, "/api/orders/", f.outsider, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = middlewaretest.Do(f.router, http.MethodGet, orderPath(first.ID), f.outsider, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = middlewaretest.Do(f.router, http.MethodGet, orderPath(9999), f.customer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t)
	o := f.placeOrder(t, f.offer.Details[0].ID)

	w := middlewaretest.Do(f.router, http.MethodPatch, orderPath(o.ID), f.customer, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// callers without access are refused before the body is read
	w = middlewaretest.Do(f.router, http.MethodPatch, orderPath(o.ID), f.customer, gin.H{"status": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = middlewaretest.Do(f.router, http.MethodPut, orderPath(o.ID), f.outsider, gin.H{"status": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = middlewaretest.Do(f.router, http.MethodPatch, orderPath(9999), f.business, gin.H{"status": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = middlewaretest.Do(f.router, http.MethodPatch, orderPath(o.ID), f.business, gin.H{"status": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = middlewaretest.Do(f.router, http.MethodPatch, orderPath(o.ID), f.business, gin.H{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status")

	w = middlewaretest.Do(f.router, http.MethodPatch, orderPath(o.ID), f.business, gin.H{"title": "ignored"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = middlewaretest.Do(f.router, http.MethodPatch, orderPath(o.ID), f.business, gin.H{"status": "completed", "price": "1.00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, o.Price, out.Price)

	// transitions are unconstrained
	w = middlewaretest.Do(f.router, http.MethodPut, orderPath(o.ID), f.business, gin.H{"status": "in_progress"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDelete_StaffOnly(t *testing.T) {
	f := setup(t)
	o := f.placeOrder(t, f.offer.Details[0].ID)

	w := middlewaretest.Do(f.router, http.MethodDelete, orderPath(o.ID), f.business, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// refused before lookup
	w = middlewaretest.Do(f.router, http.MethodDelete, orderPath(9999), f.customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = middlewaretest.Do(f.router, http.MethodDelete, orderPath(o.ID), f.staff, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = middlewaretest.Do(f.router, http.MethodDelete, orderPath(o.ID), f.staff, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderCounts(t *testing.T) {
	f := setup(t)
	a := f.placeOrder(t, f.offer.Details[0].ID)
	f.placeOrder(t, f.offer.Details[1].ID)
	f.placeOrder(t, f.offer.Details[2].ID)

	w := middlewaretest.Do(f.router, http.MethodPatch, orderPath(a.ID), f.business, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	biz := strconv.FormatInt(f.business.ID, 10)
	w = middlewaretest.Do(f.router, http.MethodGet, "/api/order-count/"+biz+"/", f.customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"order_count":2}`, w.Body.String())

	w = middlewaretest.Do(f.router, http.MethodGet, "/api/completed-order-count/"+biz+"/", f.customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"completed_order_count":1}`, w.Body.String())

	w = middlewaretest.Do(f.router, http.MethodGet, "/api/order-count/9999/", f.customer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = middlewaretest.Do(f.router, http.MethodGet, "/api/order-count/"+biz+"/", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
