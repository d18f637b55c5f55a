package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/freshplate/ordering-client/internal/cart"
	"github.com/freshplate/ordering-client/internal/models"
)

// newPathIDRequest -> builds a request carrying the {id} path value the way
// the mux would
func newPathIDRequest(method, url, id string, body []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	req.SetPathValue("id", id)
	return req
}

func seedCart(store *cart.Store, foodID int64, name string, price float64, quantity int) {
	store.AddItem(models.Food{
		ID:    foodID,
		Name:  name,
		Price: models.Decimal(price),
	}, quantity)
}
