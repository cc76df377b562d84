package catalog

var defaultProducts = []Product{
	{
		UID:   "product_iphone_15",
		Name:  "iPhone 15",
		Price: 99999,
	},
	{
		UID:   "product_samsung_galaxy",
		Name:  "Samsung Galaxy",
		Price: 79999,
	},
	{
		UID:   "product_macbook_air",
		Name:  "MacBook Air",
		Price: 129900,
	},
	{
		UID:   "product_airpods_pro",
		Name:  "AirPods Pro",
		Price: 24999,
	},
	{
		UID:   "product_kindle_paperwhite",
		Name:  "Kindle Paperwhite",
		Price: 14999,
	},
	{
		UID:   "product_usb_c_cable",
		Name:  "USB-C cable",
		Price: 1299,
	},
}
