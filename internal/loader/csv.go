package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/thien/ecom-seeder/internal/model"
)

// readTable reads one entity's CSV file and returns typed column values
// per row, ready to bind to the insert statement. The header must match
// the canonical column order exactly.
func readTable(dataDir, table string) ([][]any, error) {
	path := filepath.Join(dataDir, table+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, missingFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	columns := model.ColumnsFor(table)
	header := records[0]
	if len(header) != len(columns) {
		return nil, fmt.Errorf("%s header has %d columns, want %d", path, len(header), len(columns))
	}
	for i, col := range columns {
		if header[i] != col {
			return nil, fmt.Errorf("%s header column %d is %q, want %q", path, i+1, header[i], col)
		}
	}

	parse := parserFor(table)
	rows := make([][]any, 0, len(records)-1)
	for i, record := range records[1:] {
		values, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
		rows = append(rows, values)
	}
	return rows, nil
}

type rowParser func(record []string) ([]any, error)

func parserFor(table string) rowParser {
	switch table {
	case model.TableUsers:
		return parseUser
	case model.TableProducts:
		return parseProduct
	case model.TableOrders:
		return parseOrder
	case model.TableOrderItems:
		return parseOrderItem
	default:
		return parsePayment
	}
}

func parseUser(record []string) ([]any, error) {
	id, err := parseID("user_id", record[0])
	if err != nil {
		return nil, err
	}
	return []any{id, record[1], record[2], record[3], record[4]}, nil
}

func parseProduct(record []string) ([]any, error) {
	id, err := parseID("product_id", record[0])
	if err != nil {
		return nil, err
	}
	price, err := parseMoney("price", record[3])
	if err != nil {
		return nil, err
	}
	stock, err := parseID("stock", record[4])
	if err != nil {
		return nil, err
	}
	return []any{id, record[1], record[2], price, stock}, nil
}

func parseOrder(record []string) ([]any, error) {
	id, err := parseID("order_id", record[0])
	if err != nil {
		return nil, err
	}
	userID, err := parseID("user_id", record[1])
	if err != nil {
		return nil, err
	}
	total, err := parseMoney("total_amount", record[3])
	if err != nil {
		return nil, err
	}
	return []any{id, userID, record[2], total}, nil
}

func parseOrderItem(record []string) ([]any, error) {
	id, err := parseID("order_item_id", record[0])
	if err != nil {
		return nil, err
	}
	orderID, err := parseID("order_id", record[1])
	if err != nil {
		return nil, err
	}
	productID, err := parseID("product_id", record[2])
	if err != nil {
		return nil, err
	}
	qty, err := parseID("quantity", record[3])
	if err != nil {
		return nil, err
	}
	unitPrice, err := parseMoney("unit_price", record[4])
	if err != nil {
		return nil, err
	}
	return []any{id, orderID, productID, qty, unitPrice}, nil
}

func parsePayment(record []string) ([]any, error) {
	id, err := parseID("payment_id", record[0])
	if err != nil {
		return nil, err
	}
	orderID, err := parseID("order_id", record[1])
	if err != nil {
		return nil, err
	}
	amount, err := parseMoney("amount", record[2])
	if err != nil {
		return nil, err
	}
	return []any{id, orderID, amount, record[3], record[4], record[5]}, nil
}

func parseID(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return n, nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
