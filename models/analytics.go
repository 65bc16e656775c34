package models

import "time"

// Dashboard payloads for the admin analytics endpoints. All percentages are
// rounded to 2 decimals; trend series are dense (missing days filled with
// zeroes) so they are chart-ready as-is.

// RevenueTrendPoint is one day of the sales trend.
type RevenueTrendPoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type SalesAnalytics struct {
	TotalSales    int                 `json:"totalSales"`
	TotalRevenue  float64             `json:"totalRevenue"`
	AvgOrderValue float64             `json:"avgOrderValue"`
	ReturnRate    float64             `json:"returnRate"` // cancelled / total orders, percent
	RevenueTrends []RevenueTrendPoint `json:"revenueTrends"`
	TopDays       []RevenueTrendPoint `json:"topDays"`
}

// ProductStat joins order line performance with the live catalog.
type ProductStat struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Views    int64   `json:"views"`
	Stock    *int    `json:"stock"` // nil when the product no longer exists in the catalog
}

type ProductConversion struct {
	Name           string   `json:"name"`
	ConversionRate *float64 `json:"conversionRate"` // nil when the product has no views
}

type ProductPerformance struct {
	TopSelling       []ProductStat       `json:"topSelling"`
	LeastPerforming  []ProductStat       `json:"leastPerforming"`
	MostViewed       []ProductStat       `json:"mostViewed"`
	ConversionRates  []ProductConversion `json:"conversionRates"`
	StockAlerts      []ProductStat       `json:"stockAlerts"`
	StagnantProducts []ProductStat       `json:"stagnantProducts"`
}

type BuyerSpend struct {
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Spend float64 `json:"spend"`
}

type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// UsageShare is one device or OS category with its share of all category
// tallies (not a distribution over users).
type UsageShare struct {
	Type    string  `json:"type"`
	Percent float64 `json:"percent"`
}

type CustomerBehavior struct {
	NewCustomers             int          `json:"newCustomers"`
	ReturningCustomers       int          `json:"returningCustomers"`
	TopBuyers                []BuyerSpend `json:"topBuyers"`
	RetentionRate            float64      `json:"retentionRate"`
	Locations                []StateCount `json:"locations"`
	Devices                  []UsageShare `json:"devices"`
	CustomerLifetimeValue    float64      `json:"customerLifetimeValue"`
	TopCustomerLifetimeValue float64      `json:"topCustomerLifetimeValue"`
	AverageSpend             float64      `json:"averageSpend"`
	AverageSpendPerCustomer  []BuyerSpend `json:"averageSpendPerCustomer"`
	LiveVisitors             int64        `json:"liveVisitors"`
	LiveCarts                int64        `json:"liveCarts"`
}

type VisitTrendPoint struct {
	Date   string `json:"date"`
	Visits int    `json:"visits"`
}

type LandingPageCount struct {
	Page   string `json:"page"`
	Visits int    `json:"visits"`
}

type ExitPageCount struct {
	Page  string `json:"page"`
	Exits int    `json:"exits"`
}

type PageViewCount struct {
	Page  string `json:"page"`
	Views int    `json:"views"`
}

type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Visits   int    `json:"visits"`
}

type SessionPageViews struct {
	SessionID string  `json:"sessionId"`
	PageViews int     `json:"pageViews"`
	Email     *string `json:"email,omitempty"`
}

type TrafficEngagement struct {
	VisitsTrends        []VisitTrendPoint  `json:"visitsTrends"`
	AvgSessionDuration  float64            `json:"avgSessionDuration"` // minutes
	BounceRate          float64            `json:"bounceRate"`         // percent
	TopLandingPages     []LandingPageCount `json:"topLandingPages"`
	TopReferrers        []ReferrerCount    `json:"topReferrers"`
	TopExitPages        []ExitPageCount    `json:"topExitPages"`
	PageViewsPerSession []SessionPageViews `json:"pageViewsPerSession"`
	TopMostViewedPages  []PageViewCount    `json:"topMostViewedPages"`
	OSes                []UsageShare       `json:"oses"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type OrderTrendPoint struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}

type OrdersOverview struct {
	StatusBreakdown    []StatusCount     `json:"statusBreakdown"`
	OrderTrends        []OrderTrendPoint `json:"orderTrends"`
	AvgFulfillmentTime float64           `json:"avgFulfillmentTime"` // days, delivered orders only
	CancelledCount     int64             `json:"cancelledCount"`
	ReturnedCount      int64             `json:"returnedCount"`
}

type CampaignStats struct {
	Name        string  `json:"name"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	Spend       float64 `json:"spend"`
	ROI         float64 `json:"roi"` // revenue / spend * 100, zero-spend guarded
}

type MarketingPerformance struct {
	Campaigns    []CampaignStats `json:"campaigns"`
	TotalSpend   float64         `json:"totalSpend"`
	TotalRevenue float64         `json:"totalRevenue"`
}

type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type CartProductCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FunnelAnalytics holds independent distinct-session tallies per stage.
// A session may count at a later stage without a record at an earlier one.
type FunnelAnalytics struct {
	Funnel          []FunnelStage      `json:"funnel"`
	TopCartProducts []CartProductCount `json:"topCartProducts"`
}

type LiveVisitorPoint struct {
	Minute time.Time `json:"minute"`
	Active int       `json:"active"`
}

type PageTransition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}
