package generator

// Closed vocabularies sampled by the generator.
var (
	banks       = []string{"Chase", "Bank of America", "Wells Fargo", "Citi", "Capital One"}
	creditCards = []string{"Chase Sapphire", "Amex Blue", "Discover", "CapitalOne Venture", "Citi Double Cash"}
	loans       = []string{"Car Loan", "Student Loan", "Mortgage", "Personal Loan"}
	memberships = []string{"Gym", "Netflix", "Spotify", "Amazon Prime", "Airline Club", "Costco"}
	insurance   = []string{"Health", "Auto", "Home", "Life"}

	transactionDescriptions = []string{
		"Grocery", "Restaurant", "Utilities", "Online Shopping", "Gas", "Subscription", "Rent",
		"Travel", "Coffee", "Electronics", "Medical", "Insurance", "Gym",
	}
	transactionCategories = []string{
		"Food", "Bills", "Shopping", "Transport", "Housing", "Entertainment", "Travel",
		"Health", "Subscriptions", "Insurance",
	}

	investmentTypes = []string{"Stock", "ETF", "Bond", "Crypto", "Mutual Fund", "REIT"}

	benefitNames = []string{
		"Airline Miles", "Cashback", "Gym Discount", "Streaming Service", "Hotel Points",
		"Fuel Discount", "Retail Coupons", "Travel Vouchers", "Dining Discounts", "Membership Perks",
	}
	benefitProviders   = []string{"Chase", "Amex", "Bank of America", "Netflix", "Marriott", "Shell", "Amazon"}
	benefitFrequencies = []string{"Monthly", "Yearly"}
)

// Column schemas of the generated sections.
var (
	personalInfoColumns = []string{"Field", "Value"}
	transactionColumns  = []string{"Date", "Description", "Amount", "Category"}
	investmentColumns   = []string{"Investment_Type", "Ticker", "Shares", "Value_USD", "Annual_Return"}
	benefitColumns      = []string{"Benefit", "Provider", "Estimated_Savings_USD", "Frequency"}
)
