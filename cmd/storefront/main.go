// Command storefront is the terminal storefront and admin console for the
// OZ Baby Toys shop. It drives the API client, cart and session stores; all
// state lives in a single JSON file under the state directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Jathol7/oz-baby-toys-store/cart"
	"github.com/Jathol7/oz-baby-toys-store/checkout"
	"github.com/Jathol7/oz-baby-toys-store/client"
	"github.com/Jathol7/oz-baby-toys-store/pkg/logger"
	"github.com/Jathol7/oz-baby-toys-store/session"
	"github.com/Jathol7/oz-baby-toys-store/storage"
)

const defaultAPIURL = "http://localhost:8080"

// app bundles the wired stores for the command handlers.
type app struct {
	apiURL   string
	api      *client.Client
	cart     *cart.Store
	session  *session.Store
	checkout *checkout.Service
	ledger   *checkout.Ledger
}

func main() {
	_ = godotenv.Load()
	logger.Init(true)
	defer logger.Sync()

	a, err := buildApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildApp() (*app, error) {
	stateDir := os.Getenv("OZ_STORE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		stateDir = filepath.Join(home, ".oz-baby-toys")
	}
	st, err := storage.OpenFile(filepath.Join(stateDir, "state.json"))
	if err != nil {
		return nil, err
	}

	apiURL := os.Getenv("OZ_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	// The token rides straight out of local storage on every request, so a
	// login in one command is picked up by the next.
	api := client.New(apiURL, client.WithTokenSource(func() string {
		raw, _ := st.Get(storage.KeyAuthToken)
		return string(raw)
	}))

	c := cart.New(st)
	ledger := checkout.NewLedger(st)
	a := &app{
		apiURL:   apiURL,
		api:      api,
		cart:     c,
		session:  session.New(st, api),
		checkout: checkout.NewService(api, c, ledger),
		ledger:   ledger,
	}
	if os.Getenv("OZ_STRICT_CHECKOUT") == "true" {
		a.checkout.Policy = checkout.Policy{MaskFailures: false}
	}
	return a, nil
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "products":
		return a.cmdProducts(args)
	case "product":
		return a.cmdProduct(args)
	case "categories":
		return a.cmdCategories(args)
	case "cart":
		return a.cmdCart(args)
	case "register":
		return a.cmdRegister(args)
	case "login":
		return a.cmdLogin(args)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "checkout":
		return a.cmdCheckout(args)
	case "orders":
		return a.cmdOrders()
	case "admin":
		return a.cmdAdmin(args)
	case "watch-orders":
		return a.cmdWatchOrders()
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Println(`OZ Baby Toys storefront

Usage:
  storefront products [-search TERM] [-subcategory ID] [-per-page N]
  storefront product SLUG
  storefront categories
  storefront cart show|add|remove|set|clear ...
  storefront register -name NAME -email EMAIL -password PASS
  storefront login -email EMAIL -password PASS
  storefront logout
  storefront whoami
  storefront checkout -name NAME -address ADDR -city CITY -phone PHONE
  storefront orders
  storefront admin products|product-add|product-rm|export|categories|category-add|category-rm|orders|set-status ...
  storefront watch-orders

Environment:
  OZ_API_URL            backend base URL (default http://localhost:8080)
  OZ_STORE_DIR          local state directory (default ~/.oz-baby-toys)
  OZ_STRICT_CHECKOUT    "true" surfaces checkout failures instead of masking`)
}
