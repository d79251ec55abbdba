package reference

// State is an Indian state or union territory with its two-letter code
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var states = []State{
	{Code: "AN", Name: "Andaman & Nicobar Islands"},
	{Code: "AP", Name: "Andhra Pradesh"},
	{Code: "AR", Name: "Arunachal Pradesh"},
	{Code: "AS", Name: "Assam"},
	{Code: "BR", Name: "Bihar"},
	{Code: "CG", Name: "Chhattisgarh"},
	{Code: "CH", Name: "Chandigarh"},
	{Code: "DD", Name: "Dadra & Nagar Haveli and Daman & Diu"},
	{Code: "DL", Name: "Delhi"},
	{Code: "GA", Name: "Goa"},
	{Code: "GJ", Name: "Gujarat"},
	{Code: "HP", Name: "Himachal Pradesh"},
	{Code: "HR", Name: "Haryana"},
	{Code: "JH", Name: "Jharkhand"},
	{Code: "JK", Name: "Jammu & Kashmir"},
	{Code: "KA", Name: "Karnataka"},
	{Code: "KL", Name: "Kerala"},
	{Code: "LA", Name: "Ladakh"},
	{Code: "LD", Name: "Lakshadweep"},
	{Code: "MH", Name: "Maharashtra"},
	{Code: "ML", Name: "Meghalaya"},
	{Code: "MN", Name: "Manipur"},
	{Code: "MP", Name: "Madhya Pradesh"},
	{Code: "MZ", Name: "Mizoram"},
	{Code: "NL", Name: "Nagaland"},
	{Code: "OR", Name: "Odisha"},
	{Code: "PB", Name: "Punjab"},
	{Code: "PY", Name: "Puducherry"},
	{Code: "RJ", Name: "Rajasthan"},
	{Code: "SK", Name: "Sikkim"},
	{Code: "TG", Name: "Telangana"},
	{Code: "TN", Name: "Tamil Nadu"},
	{Code: "TR", Name: "Tripura"},
	{Code: "UP", Name: "Uttar Pradesh"},
	{Code: "UT", Name: "Uttarakhand"},
	{Code: "WB", Name: "West Bengal"},
}

// States returns a copy of the state list
func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}
