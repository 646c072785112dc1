package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every module's HTTP handler so the application
// can assemble routes without knowing module internals.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}

type composite []Handler

// Composite bundles module handlers into a single Handler so the server
// mounts them all on one router.
func Composite(handlers ...Handler) Handler {
	return composite(handlers)
}

func (c composite) RegisterRoutes(router *httprouter.Router) {
	for _, h := range c {
		h.RegisterRoutes(router)
	}
}
