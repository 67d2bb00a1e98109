package inventory

// Builtin returns the demo showroom stock. Prices are in Iranian rial.
func Builtin() []Item {
	return []Item{
		{Name: "Tesla Model 3", Price: "4,628,733,300 ﷼", Stock: 15},
		{Name: "BMW X5", Price: "6,632,472,000 ﷼", Stock: 8},
		{Name: "Mercedes-Benz C-Class", Price: "4,689,028,500 ﷼", Stock: 12},
		{Name: "Toyota Camry", Price: "2,844,641,400 ﷼", Stock: 25},
		{Name: "Honda Accord", Price: "3,002,916,300 ﷼", Stock: 20},
		{Name: "Audi A4", Price: "4,403,703,000 ﷼", Stock: 10},
		{Name: "Porsche 911", Price: "12,500,000,000 ﷼", Stock: 3},
		{Name: "Ford Mustang", Price: "5,800,000,000 ﷼", Stock: 7},
		{Name: "Chevrolet Corvette", Price: "7,200,000,000 ﷼", Stock: 5},
		{Name: "Lexus RX", Price: "6,100,000,000 ﷼", Stock: 14},
		{Name: "Range Rover Sport", Price: "9,500,000,000 ﷼", Stock: 6},
	}
}
