package synth

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Header lists the CSV columns in the order a bulk load into the orders table expects.
var Header = []string{
	"order_id",
	"order_date",
	"user_id",
	"product_id",
	"quantity",
	"price",
	"total_amount",
	"country",
	"city",
}

// DateLayout is the order_date format.
const DateLayout = "2006-01-02"

// Order is one synthetic order row. It is never stored past serialization.
type Order struct {
	OrderID     string
	OrderDate   string
	UserID      int
	ProductID   int
	Quantity    int
	Price       decimal.Decimal
	TotalAmount decimal.Decimal
	Country     string
	City        string
}

// Fields renders the order in Header order.
// buf is reused when it has room for every column.
func (o *Order) Fields(buf []string) []string {
	if cap(buf) < len(Header) {
		buf = make([]string, len(Header))
	}
	buf = buf[:len(Header)]

	buf[0] = o.OrderID
	buf[1] = o.OrderDate
	buf[2] = strconv.Itoa(o.UserID)
	buf[3] = strconv.Itoa(o.ProductID)
	buf[4] = strconv.Itoa(o.Quantity)
	buf[5] = o.Price.StringFixed(2)
	buf[6] = o.TotalAmount.StringFixed(2)
	buf[7] = o.Country
	buf[8] = o.City

	return buf
}
