package user

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	Timezone string
	// Currency is an ISO 4217 code; purely presentational, all amounts are
	// stored in minor units of this currency.
	Currency string
}
