package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/enthus-golang/lulu"
)

func estimateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "pod-package-id", Usage: "Product `SKU`", Required: true},
		&cli.IntFlag{Name: "pages", Usage: "Interior page count", Required: true},
		&cli.IntFlag{Name: "quantity", Usage: "Number of copies", Value: 1},
		&cli.StringFlag{Name: "country", Usage: "ISO country `CODE`", Required: true},
		&cli.StringFlag{Name: "state", Usage: "State `CODE`"},
		&cli.StringFlag{Name: "city", Usage: "City"},
		&cli.StringFlag{Name: "postcode", Usage: "Postal code"},
		&cli.StringFlag{Name: "street1", Usage: "Street address"},
		&cli.StringFlag{Name: "phone", Usage: "Recipient phone number"},
	}
}

func shippingCommand() *cli.Command {
	return &cli.Command{
		Name:  "shipping",
		Usage: "Estimate costs and shipping options",
		Subcommands: []*cli.Command{
			{
				Name:  "options",
				Usage: "List shipping options for a prospective order",
				Flags: append(estimateFlags(),
					&cli.StringFlag{Name: "currency", Usage: "Currency `CODE` of the prices", Value: "USD"},
				),
				Action: runShippingOptions,
			},
			{
				Name:  "cost",
				Usage: "Calculate the cost of a prospective order",
				Flags: append(estimateFlags(),
					&cli.StringFlag{Name: "level", Usage: "Shipping `LEVEL`", Value: string(lulu.ShippingMail)},
				),
				Action: runShippingCost,
			},
		},
	}
}

func estimateInput(c *cli.Context) ([]lulu.CostLineItem, lulu.ShippingAddress) {
	items := []lulu.CostLineItem{{
		PageCount:    c.Int("pages"),
		PodPackageID: c.String("pod-package-id"),
		Quantity:     c.Int("quantity"),
	}}
	address := lulu.ShippingAddress{
		City:        c.String("city"),
		CountryCode: c.String("country"),
		PhoneNumber: c.String("phone"),
		Postcode:    c.String("postcode"),
		StateCode:   c.String("state"),
		Street1:     c.String("street1"),
	}
	return items, address
}

func runShippingOptions(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	items, address := estimateInput(c)
	options, err := e.client.ShippingOptions(c.Context, items, address, c.String("currency"))
	if err != nil {
		return err
	}
	return e.print(options)
}

func runShippingCost(c *cli.Context) error {
	level := lulu.ShippingLevel(c.String("level"))
	if !validLevel(level) {
		return fmt.Errorf("unknown shipping level %q", level)
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	items, address := estimateInput(c)
	calc, err := e.client.CalculatePrintJobCost(c.Context, items, address, level)
	if err != nil {
		return err
	}
	return e.print(calc)
}

func validLevel(level lulu.ShippingLevel) bool {
	for _, l := range lulu.ShippingLevels {
		if l == level {
			return true
		}
	}
	return false
}
