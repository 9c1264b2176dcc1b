package runner

// Operator describes one launchable bot source. Key is the CLI argument the
// bot entrypoint expects, FileBase names the operator module the bot codebase
// must contain (operators/<FileBase>_ops.py).
type Operator struct {
	Key         string
	DisplayName string
	FileBase    string
}

// operators lists the bot sources in display order.
var operators = []Operator{
	{Key: "reuben_lublin", DisplayName: "Reuben Lublin", FileBase: "alaw_net"},
	{Key: "brock_and_scott", DisplayName: "Brock & Scott", FileBase: "brockandscott"},
	{Key: "aldridge_pites", DisplayName: "Aldridge Pites", FileBase: "aldridgepite"},
	{Key: "foreclosure_hotline", DisplayName: "Foreclosure Hotline", FileBase: "foreclosurehotline"},
	{Key: "servicelink_auction", DisplayName: "ServiceLink Auction", FileBase: "servicelink_auction"},
	{Key: "auction_com", DisplayName: "Auction.com", FileBase: "auction_com"},
	{Key: "zome_com", DisplayName: "Xome.com", FileBase: "zome_com"},
	{Key: "logs_powerbi", DisplayName: "Logs PowerBI Report", FileBase: "logs_powerbi"},
}

// Operators returns the operator registry in display order.
func Operators() []Operator {
	out := make([]Operator, len(operators))
	copy(out, operators)
	return out
}

func lookup(key string) (Operator, bool) {
	for _, op := range operators {
		if op.Key == key {
			return op, true
		}
	}
	return Operator{}, false
}
