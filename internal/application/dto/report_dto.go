package dto

import "github.com/shopspring/decimal"

// SalesSummaryResponse agregados de ventas para el tablero.
type SalesSummaryResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	SaleCount    int64           `json:"sale_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	ItemsSold    int64           `json:"items_sold"`
}

// TopProductResponse producto más vendido en el rango.
type TopProductResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// TopProductsResponse listado ordenado por unidades vendidas.
type TopProductsResponse struct {
	From  string               `json:"from"`
	To    string               `json:"to"`
	Items []TopProductResponse `json:"items"`
}
