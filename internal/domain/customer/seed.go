package customer

// SeedCustomers returns a fresh copy of the collection written when no data exists yet.
func SeedCustomers() []*Customer {
	return []*Customer{
		{
			CustomerID:           "CUST1001",
			Name:                 "Alice Johnson",
			MonthlyIncome:        NewAmount(6200),
			MonthlyExpenses:      NewAmount(3500),
			CreditScore:          710,
			OutstandingLoans:     NewAmount(15000),
			LoanRepaymentHistory: RepaymentHistory{1, 0, 1, 1, 1, 1, 0, 1},
			AccountBalance:       NewAmount(12500),
			Status:               StatusReview,
		},
		{
			CustomerID:           "CUST1002",
			Name:                 "Bob Smith",
			MonthlyIncome:        NewAmount(4800),
			MonthlyExpenses:      NewAmount(2800),
			CreditScore:          640,
			OutstandingLoans:     NewAmount(20000),
			LoanRepaymentHistory: RepaymentHistory{1, 1, 1, 0, 0, 1, 0, 0},
			AccountBalance:       NewAmount(7300),
			Status:               StatusApproved,
		},
		{
			CustomerID:           "CUST1003",
			Name:                 "Charlie Brown",
			MonthlyIncome:        NewAmount(7500),
			MonthlyExpenses:      NewAmount(4200),
			CreditScore:          780,
			OutstandingLoans:     NewAmount(8000),
			LoanRepaymentHistory: RepaymentHistory{1, 1, 1, 1, 1, 1, 1, 1},
			AccountBalance:       NewAmount(25000),
			Status:               StatusReview,
		},
		{
			CustomerID:           "CUST1004",
			Name:                 "Diana Prince",
			MonthlyIncome:        NewAmount(5300),
			MonthlyExpenses:      NewAmount(3800),
			CreditScore:          620,
			OutstandingLoans:     NewAmount(30000),
			LoanRepaymentHistory: RepaymentHistory{1, 0, 0, 1, 0, 1, 0, 1},
			AccountBalance:       NewAmount(4500),
			Status:               StatusRejected,
		},
		{
			CustomerID:           "CUST1005",
			Name:                 "Edward Norton",
			MonthlyIncome:        NewAmount(9200),
			MonthlyExpenses:      NewAmount(5100),
			CreditScore:          750,
			OutstandingLoans:     NewAmount(22000),
			LoanRepaymentHistory: RepaymentHistory{1, 1, 1, 1, 0, 1, 1, 1},
			AccountBalance:       NewAmount(18000),
			Status:               StatusApproved,
		},
	}
}
