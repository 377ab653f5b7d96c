package silver

import (
	"time"

	"github.com/retailworks/medallion/internal/table"
)

// Tables returns the silver layer as generic tables for persistence.
func (l *Layer) Tables() []*table.Table {
	return []*table.Table{
		l.customersTable(),
		l.productsTable(),
		l.ordersTable(),
	}
}

func (l *Layer) customersTable() *table.Table {
	t := table.New("customers", []table.Column{
		{Name: "id", Type: table.Int},
		{Name: "first_name", Type: table.String},
		{Name: "last_name", Type: table.String},
		{Name: "gender", Type: table.String},
		{Name: "date_of_birth", Type: table.Time},
		{Name: "age", Type: table.Int},
		{Name: "email", Type: table.String},
		{Name: "phone", Type: table.String},
		{Name: "full_address", Type: table.String},
		{Name: "street_address", Type: table.String},
		{Name: "city", Type: table.String},
		{Name: "state", Type: table.String},
		{Name: "postal_code", Type: table.String},
		{Name: "membership", Type: table.String},
		{Name: "membership_tier_numeric", Type: table.Int},
		{Name: "email_valid", Type: table.Bool},
		{Name: "phone_valid", Type: table.Bool},
		{Name: "address_complete", Type: table.Bool},
		{Name: "is_adult", Type: table.Bool},
		{Name: "age_group", Type: table.String},
		{Name: "customer_since_days", Type: table.Int},
		{Name: "silver_processed_timestamp", Type: table.Time},
		{Name: "data_quality_score", Type: table.Float},
	})
	for _, c := range l.Customers {
		t.Rows = append(t.Rows, []any{
			intCell(c.ID), c.FirstName, c.LastName, c.Gender,
			timeCell(c.DateOfBirth), intCell(c.Age), c.Email, c.Phone,
			c.FullAddress, strCell(c.StreetAddress), strCell(c.City),
			strCell(c.State), strCell(c.PostalCode), c.Membership,
			intCell(c.MembershipTier), c.EmailValid, c.PhoneValid,
			c.AddressComplete, c.IsAdult, strCell(c.AgeGroup),
			intCell(c.CustomerSinceDays), c.ProcessedAt, c.DataQualityScore,
		})
	}
	return t
}

func (l *Layer) productsTable() *table.Table {
	t := table.New("products", []table.Column{
		{Name: "id", Type: table.Int},
		{Name: "product_name", Type: table.String},
		{Name: "price", Type: table.Float},
		{Name: "category", Type: table.String},
		{Name: "category_parent", Type: table.String},
		{Name: "category_level", Type: table.String},
		{Name: "brand", Type: table.String},
		{Name: "product_description", Type: table.String},
		{Name: "price_tier", Type: table.String},
		{Name: "description_length", Type: table.Int},
		{Name: "description_word_count", Type: table.Int},
		{Name: "is_waterproof", Type: table.Bool},
		{Name: "is_lightweight", Type: table.Bool},
		{Name: "is_durable", Type: table.Bool},
		{Name: "estimated_margin", Type: table.Float},
		{Name: "weight_kg", Type: table.Float},
		{Name: "weight_category", Type: table.String},
		{Name: "silver_processed_timestamp", Type: table.Time},
		{Name: "data_completeness_score", Type: table.Float},
	})
	for _, p := range l.Products {
		t.Rows = append(t.Rows, []any{
			intCell(p.ID), p.ProductName, floatCell(p.Price), p.Category,
			p.CategoryParent, p.CategoryLevel, p.Brand, p.ProductDescription,
			strCell(p.PriceTier), p.DescriptionLength, p.DescriptionWordCount,
			p.IsWaterproof, p.IsLightweight, p.IsDurable,
			floatCell(p.EstimatedMargin), p.WeightKg, strCell(p.WeightCategory),
			p.ProcessedAt, p.DataCompletenessScore,
		})
	}
	return t
}

func (l *Layer) ordersTable() *table.Table {
	t := table.New("orders", []table.Column{
		{Name: "id", Type: table.Int},
		{Name: "customer_id", Type: table.Int},
		{Name: "product_id", Type: table.Int},
		{Name: "customer_first_name", Type: table.String},
		{Name: "customer_last_name", Type: table.String},
		{Name: "customer_gender", Type: table.String},
		{Name: "customer_age", Type: table.Int},
		{Name: "order_date", Type: table.Time},
		{Name: "product_name", Type: table.String},
		{Name: "category", Type: table.String},
		{Name: "brand", Type: table.String},
		{Name: "quantity", Type: table.Float},
		{Name: "unit_price", Type: table.Float},
		{Name: "total", Type: table.Float},
		{Name: "calculated_total", Type: table.Float},
		{Name: "total_matches", Type: table.Bool},
		{Name: "order_year", Type: table.Int},
		{Name: "order_month", Type: table.Int},
		{Name: "order_quarter", Type: table.Int},
		{Name: "order_day_of_week", Type: table.String},
		{Name: "order_day_of_month", Type: table.Int},
		{Name: "is_weekend", Type: table.Bool},
		{Name: "is_month_end", Type: table.Bool},
		{Name: "season", Type: table.String},
		{Name: "customer_age_group", Type: table.String},
		{Name: "customer_segment", Type: table.String},
		{Name: "order_size", Type: table.String},
		{Name: "is_returned", Type: table.Bool},
		{Name: "days_since_order", Type: table.Int},
		{Name: "is_recent_order", Type: table.Bool},
		{Name: "silver_processed_timestamp", Type: table.Time},
		{Name: "data_quality_score", Type: table.Float},
	})
	for _, o := range l.Orders {
		t.Rows = append(t.Rows, []any{
			intCell(o.ID), intCell(o.CustomerID), intCell(o.ProductID),
			o.CustomerFirstName, o.CustomerLastName, o.CustomerGender,
			intCell(o.CustomerAge), timeCell(o.OrderDate), o.ProductName,
			o.Category, o.Brand, floatCell(o.Quantity), floatCell(o.UnitPrice),
			floatCell(o.Total), floatCell(o.CalculatedTotal), o.TotalMatches,
			intCell(o.OrderYear), intCell(o.OrderMonth), intCell(o.OrderQuarter),
			strCell(o.OrderDayOfWeek), intCell(o.OrderDayOfMonth), o.IsWeekend,
			o.IsMonthEnd, strCell(o.Season), strCell(o.CustomerAgeGroup),
			o.CustomerSegment, strCell(o.OrderSize), o.IsReturned,
			intCell(o.DaysSinceOrder), o.IsRecentOrder, o.ProcessedAt,
			o.DataQualityScore,
		})
	}
	return t
}

func intCell(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func strCell(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeCell(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
