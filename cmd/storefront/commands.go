package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Jathol7/oz-baby-toys-store/client"
	"github.com/Jathol7/oz-baby-toys-store/models"
)

func (a *app) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func (a *app) cmdProducts(args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	search := fs.String("search", "", "free-text search")
	subcat := fs.Uint("subcategory", 0, "sub-category id filter")
	perPage := fs.Int("per-page", 12, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := a.ctx()
	defer cancel()
	products, err := a.api.ListProducts(ctx, client.ProductQuery{
		SubCategoryID: *subcat,
		Search:        *search,
		PerPage:       *perPage,
	})
	if err != nil {
		// Listing degrades to an empty shelf, never a crash.
		fmt.Println("Could not load products:", err)
		return nil
	}
	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%4d  %-28s $%8.2f  stock %3d  %s\n", p.ID, p.Name, p.Price.Float64(), p.Stock, p.Slug)
	}
	return nil
}

func (a *app) cmdProduct(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: product SLUG")
	}
	ctx, cancel := a.ctx()
	defer cancel()
	p, err := a.api.GetProduct(ctx, args[0])
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Println("Product not found.")
			return nil
		}
		return err
	}
	fmt.Printf("%s (#%d)\n", p.Name, p.ID)
	fmt.Printf("  price: $%.2f\n  stock: %d\n  image: %s\n  %s\n", p.Price.Float64(), p.Stock, p.ImageURL(), p.Description)
	return nil
}

func (a *app) cmdCategories(args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	withProducts := fs.Bool("products", false, "include nested products")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := a.ctx()
	defer cancel()
	categories, err := a.api.CategoryTree(ctx, *withProducts, 10)
	if err != nil {
		fmt.Println("Could not load categories:", err)
		return nil
	}
	for _, cat := range categories {
		fmt.Printf("%d  %s (%s)\n", cat.ID, cat.Name, cat.Slug)
		for _, sub := range cat.SubCategories {
			fmt.Printf("    %d  %s\n", sub.ID, sub.Name)
			for _, p := range sub.Products {
				fmt.Printf("        %d  %s  $%.2f\n", p.ID, p.Name, p.Price.Float64())
			}
		}
	}
	return nil
}

func (a *app) cmdCart(args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		lines := a.cart.Lines()
		if len(lines) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		for _, l := range lines {
			fmt.Printf("%4d  %-28s x%-3d $%8.2f\n", l.ID, l.Name, l.Quantity, l.LineTotal())
		}
		fmt.Printf("%d items, total $%.2f\n", a.cart.TotalItems(), a.cart.TotalPrice())
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart add SLUG [QUANTITY]")
		}
		quantity := 1
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
			quantity = n
		}
		ctx, cancel := a.ctx()
		defer cancel()
		p, err := a.api.GetProduct(ctx, args[1])
		if err != nil {
			if client.IsNotFound(err) {
				fmt.Println("Product not found.")
				return nil
			}
			return err
		}
		a.cart.Add(p, quantity)
		fmt.Printf("Added %dx %s. Cart now holds %d items.\n", quantity, p.Name, a.cart.TotalItems())
		return nil

	case "remove":
		id, err := parseID(args, "cart remove PRODUCT_ID")
		if err != nil {
			return err
		}
		a.cart.Remove(id)
		fmt.Println("Removed.")
		return nil

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: cart set PRODUCT_ID QUANTITY")
		}
		id, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		a.cart.UpdateQuantity(uint(id), quantity)
		fmt.Printf("Cart now holds %d items, total $%.2f\n", a.cart.TotalItems(), a.cart.TotalPrice())
		return nil

	case "clear":
		a.cart.Clear()
		fmt.Println("Cart cleared.")
		return nil

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func (a *app) cmdRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := a.ctx()
	defer cancel()
	err := a.session.Register(ctx, client.RegisterForm{
		Name:                 *name,
		Email:                *email,
		Password:             *password,
		PasswordConfirmation: *password,
	})
	if err != nil {
		printAuthError(err)
		return nil
	}
	if a.session.IsAuthenticated() {
		fmt.Println("Registered and logged in.")
	} else {
		fmt.Println("Registered. Please log in.")
	}
	return nil
}

func (a *app) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.session.Login(ctx, client.Credentials{Email: *email, Password: *password}); err != nil {
		printAuthError(err)
		return nil
	}
	user, _ := a.session.User()
	fmt.Printf("Welcome back, %s!\n", user.Name)
	return nil
}

func (a *app) cmdLogout() error {
	ctx, cancel := a.ctx()
	defer cancel()
	a.session.Logout(ctx)
	fmt.Println("Logged out.")
	return nil
}

func (a *app) cmdWhoami() error {
	user, ok := a.session.User()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

func (a *app) cmdCheckout(args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	phone := fs.String("phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *address == "" || *city == "" || *phone == "" {
		return fmt.Errorf("checkout requires -name, -address, -city and -phone")
	}

	ctx, cancel := a.ctx()
	defer cancel()
	receipt, err := a.checkout.Submit(ctx, models.CustomerInfo{
		FullName: *name,
		Address:  *address,
		City:     *city,
		Phone:    *phone,
	})
	if err != nil {
		return err
	}
	fmt.Println("Order placed successfully! Thank you for shopping with OZ Baby Toys.")
	fmt.Println("Reference:", receipt.OrderRef)
	if receipt.Local {
		fmt.Println("(recorded locally; it will appear once the store is back online)")
	}
	return nil
}

func (a *app) cmdOrders() error {
	ctx, cancel := a.ctx()
	defer cancel()
	orders, err := a.api.ListMyOrders(ctx)
	if err != nil {
		fmt.Println("Could not load orders:", err)
		orders = nil
	}
	for _, o := range orders {
		printOrder(o)
	}
	if local := a.ledger.Orders(); len(local) > 0 {
		fmt.Println("Locally recorded orders:")
		for _, o := range local {
			printOrder(o)
		}
	} else if len(orders) == 0 {
		fmt.Println("No orders yet.")
	}
	return nil
}

func printOrder(o models.Order) {
	ref := o.OrderRef
	if ref == "" {
		ref = strconv.FormatUint(uint64(o.ID), 10)
	}
	fmt.Printf("%-40s %-10s $%8.2f  %s\n", ref, o.Status, o.TotalAmount.Float64(), o.CreatedAt.Format("2006-01-02 15:04"))
}

// printAuthError renders field-level validation messages when present, so
// the register/login flows show the same detail the web forms did.
func printAuthError(err error) {
	if client.IsValidation(err) {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Println(apiErr.Message)
			for field, msgs := range apiErr.Fields {
				for _, msg := range msgs {
					fmt.Printf("  %s: %s\n", field, msg)
				}
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "Authentication failed:", err)
}

func parseID(args []string, usage string) (uint, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[1])
	}
	return uint(id), nil
}
