package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Jathol7/oz-baby-toys-store/client"
	"github.com/Jathol7/oz-baby-toys-store/models"
)

// cmdAdmin dispatches the management console subcommands. The backend
// enforces the admin role; the CLI just forwards the bearer token.
func (a *app) cmdAdmin(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: admin products|product-add|product-rm|export|categories|category-add|category-rm|orders|set-status ...")
	}
	switch args[0] {
	case "products":
		return a.adminProducts()
	case "product-add":
		return a.adminProductAdd(args[1:])
	case "product-rm":
		return a.adminProductRemove(args[1:])
	case "export":
		return a.adminExport(args[1:])
	case "categories":
		return a.adminCategories()
	case "category-add":
		return a.adminCategoryAdd(args[1:])
	case "category-rm":
		return a.adminCategoryRemove(args[1:])
	case "orders":
		return a.adminOrders()
	case "set-status":
		return a.adminSetStatus(args[1:])
	default:
		return fmt.Errorf("unknown admin subcommand %q", args[0])
	}
}

func (a *app) adminProducts() error {
	ctx, cancel := a.ctx()
	defer cancel()
	products, err := a.api.AdminProducts(ctx, 0)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%4d  %-28s $%8.2f  stock %3d  sub-cat %d\n", p.ID, p.Name, p.Price.Float64(), p.Stock, p.SubCategoryID)
	}
	return nil
}

func (a *app) adminProductAdd(args []string) error {
	fs := flag.NewFlagSet("product-add", flag.ContinueOnError)
	name := fs.String("name", "", "product name")
	slug := fs.String("slug", "", "url slug")
	description := fs.String("description", "", "description")
	price := fs.Float64("price", 0, "price")
	stock := fs.Int("stock", 0, "stock quantity")
	subcat := fs.Uint("subcategory", 0, "sub-category id")
	imagePath := fs.String("image", "", "path to image file (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := client.ProductForm{
		Name:          *name,
		Slug:          *slug,
		Description:   *description,
		Price:         *price,
		Stock:         *stock,
		SubCategoryID: *subcat,
	}
	if *imagePath != "" {
		f, err := os.Open(*imagePath)
		if err != nil {
			return err
		}
		defer f.Close()
		form.Image = f
		form.ImageName = filepath.Base(*imagePath)
	}

	ctx, cancel := a.ctx()
	defer cancel()
	p, err := a.api.CreateProduct(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("Created product #%d %s\n", p.ID, p.Name)
	return nil
}

func (a *app) adminProductRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: admin product-rm PRODUCT_ID")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.api.DeleteProduct(ctx, uint(id)); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func (a *app) adminExport(args []string) error {
	out := "products.xlsx"
	if len(args) == 1 {
		out = args[0]
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.api.ExportProducts(ctx, f); err != nil {
		return err
	}
	fmt.Println("Exported to", out)
	return nil
}

func (a *app) adminCategories() error {
	ctx, cancel := a.ctx()
	defer cancel()
	categories, err := a.api.AdminCategories(ctx, 0)
	if err != nil {
		return err
	}
	for _, cat := range categories {
		active := "inactive"
		if cat.IsActive {
			active = "active"
		}
		fmt.Printf("%4d  %-24s %s\n", cat.ID, cat.Name, active)
	}
	return nil
}

func (a *app) adminCategoryAdd(args []string) error {
	fs := flag.NewFlagSet("category-add", flag.ContinueOnError)
	name := fs.String("name", "", "category name")
	inactive := fs.Bool("inactive", false, "create as inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, cancel := a.ctx()
	defer cancel()
	cat, err := a.api.CreateCategory(ctx, *name, !*inactive)
	if err != nil {
		return err
	}
	fmt.Printf("Created category #%d %s\n", cat.ID, cat.Name)
	return nil
}

func (a *app) adminCategoryRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: admin category-rm CATEGORY_ID")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid category id %q", args[0])
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.api.DeleteCategory(ctx, uint(id)); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func (a *app) adminOrders() error {
	ctx, cancel := a.ctx()
	defer cancel()
	orders, err := a.api.AdminOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return nil
	}
	for _, o := range orders {
		printOrder(o)
	}
	return nil
}

func (a *app) adminSetStatus(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: admin set-status ORDER_ID STATUS")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	status, err := models.ParseOrderStatus(args[1])
	if err != nil {
		return err
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.api.UpdateOrderStatus(ctx, uint(id), status); err != nil {
		return err
	}
	fmt.Printf("Order %d is now %s\n", id, status)
	return nil
}

// cmdWatchOrders follows the live admin order feed until interrupted.
func (a *app) cmdWatchOrders() error {
	wsURL := "ws" + strings.TrimPrefix(a.apiURL, "http") + "/ws/orders"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to order feed: %w", err)
	}
	defer conn.Close()

	fmt.Println("Watching orders (ctrl-c to stop)...")
	for {
		var o models.Order
		if err := conn.ReadJSON(&o); err != nil {
			return err
		}
		printOrder(o)
	}
}
