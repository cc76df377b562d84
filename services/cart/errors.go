package cart

import (
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	ErrorKindCartNotFound ErrorKind = iota
	ErrorKindProductNotFound
	ErrorKindProductNotInCart
	ErrorKindInvalidQuantity
	ErrorKindEmptyCart
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindCartNotFound:
		return "CartNotFound"
	case ErrorKindProductNotFound:
		return "ProductNotFound"
	case ErrorKindProductNotInCart:
		return "ProductNotInCart"
	case ErrorKindInvalidQuantity:
		return "InvalidQuantity"
	case ErrorKindEmptyCart:
		return "EmptyCart"
	}
	return "Unknown"
}

// Error is the typed failure of a cart operation. The not-found family maps
// to 404, the validation family to 422, so the generic response writer can
// translate without knowing the kinds.
type Error struct {
	kind ErrorKind
	err  error
}

func (e Error) Error() string {
	return e.err.Error()
}

func (e Error) Kind() ErrorKind {
	return e.kind
}

func (e Error) Unwrap() error {
	return e.err
}

func (e Error) GetHTTPErrorCode() int {
	switch e.kind {
	case ErrorKindCartNotFound, ErrorKindProductNotFound, ErrorKindProductNotInCart:
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}

func newCartNotFoundError() Error {
	return Error{kind: ErrorKindCartNotFound, err: fmt.Errorf("cart not found")}
}

func newProductNotFoundError(productUID string) Error {
	return Error{kind: ErrorKindProductNotFound, err: fmt.Errorf("product with uid %s not found", productUID)}
}

func newProductNotInCartError(productUID string) Error {
	return Error{kind: ErrorKindProductNotInCart, err: fmt.Errorf("product with uid %s not in cart", productUID)}
}

func newInvalidQuantityError(quantity int) Error {
	return Error{kind: ErrorKindInvalidQuantity, err: fmt.Errorf("quantity %d must be greater than 0", quantity)}
}

func newInvalidDeltaError() Error {
	return Error{kind: ErrorKindInvalidQuantity, err: fmt.Errorf("quantity delta must not be 0")}
}

func newEmptyCartError() Error {
	return Error{kind: ErrorKindEmptyCart, err: fmt.Errorf("cart is empty")}
}
