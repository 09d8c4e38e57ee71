package triage

var defaultTables = mustTables(TablesSpec{
	BlockConditions: []BlockCondition{
		{ID: "device_mac_pos", Label: "POS runs on macOS", Group: GroupDevice},
		{ID: "device_ipad_only", Label: "Store only operates an iPad POS", Group: GroupDevice},
		{ID: "device_no_network", Label: "No wired or Wi-Fi network at the counter", Group: GroupDevice},
		{ID: "device_locked_kiosk", Label: "Kiosk bundled with a third-party POS that cannot be removed", Group: GroupDevice},
		{ID: "service_hq_designated_pos", Label: "Franchise HQ mandates a designated POS", Group: GroupService},
		{ID: "service_table_order_lock", Label: "Table-order system locked to the current POS vendor", Group: GroupService},
		{ID: "service_multi_business", Label: "Multiple business registrations share one terminal", Group: GroupService},
		{ID: "service_hotel_pms", Label: "Requires hotel PMS integration", Group: GroupService},
	},
	CompatibleVans: map[string][]string{
		"KICC":    {"TS-114A", "ED-785", "ED-955"},
		"NICE":    {"NICE-R1", "NI-3000"},
		"KIS":     {"KIS-2100", "KIS-N5"},
		"SMARTRO": {"SMT-T280", "SMT-Q453"},
		"KCP":     {},
	},
	IncompatibleVans: []string{"KSNET", "KOCES", "JTNET", "DAOU", "FDIK"},
	Templates: []RecommendationTemplate{
		{
			Key:   NewDelivery,
			Title: "New store with delivery: full bundle",
			Items: []string{
				"Install the POS with delivery-app order integration",
				"Register delivery platforms during installation",
				"Issue a new VAN contract with a compatible processor",
			},
			Severity: SeveritySuccess,
		},
		{
			Key:   NewNoDelivery,
			Title: "New store without delivery: standard POS",
			Items: []string{
				"Install the standard POS package",
				"Issue a new VAN contract with a compatible processor",
				"Offer delivery integration as an optional add-on",
			},
			Severity: SeveritySuccess,
		},
		{
			Key:   ExistingWindows,
			Title: "Existing store on Windows: replace POS software",
			Items: []string{
				"Reuse the Windows POS hardware after a spec check",
				"Migrate menu and sales data from the current vendor",
				"Keep the current VAN when it is on the compatible list",
			},
			Severity: SeverityInfo,
		},
		{
			Key:   ExistingAndroid,
			Title: "Existing store on Android: replace device",
			Items: []string{
				"Swap the Android POS for a supported device",
				"Check the VAN and card terminal against the compatibility list",
				"Schedule data migration with the installation team",
			},
			Severity: SeverityInfo,
		},
		{
			Key:   BlockedContract,
			Title: "Contract obligation outstanding",
			Items: []string{
				"The current POS contract has not been cleared",
				"Revisit after the obligation period ends or the penalty is settled",
			},
			Severity: SeverityBlocked,
		},
		{
			Key:   NeedCompatibilityCheck,
			Title: "Keep current device: compatibility check required",
			Items: []string{
				"Collect the current device model and OS version",
				"Request a compatibility review before quoting",
			},
			Severity: SeverityWarning,
		},
	},
})

// DefaultCatalog returns the process-wide static tables.
func DefaultCatalog() *Tables {
	return defaultTables
}

func mustTables(spec TablesSpec) *Tables {
	t, err := NewTables(spec)
	if err != nil {
		panic(err)
	}
	return t
}
