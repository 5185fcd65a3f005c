package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// ethDecimals is the number of decimal places in one ether.
const ethDecimals = 18

var weiPerEth = new(big.Int).Exp(big.NewInt(10), big.NewInt(ethDecimals), nil)

// ParseEth converts a decimal ether string into an exact wei amount using
// integer arithmetic only. Floating point would lose precision at the
// smallest unit ("0.000000000000000001" must map to 1 wei, not 0).
func ParseEth(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative amount: %s", s)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > ethDecimals {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", s, ethDecimals)
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("malformed amount: %s", s)
	}

	wholeWei, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount: %s", s)
	}
	wholeWei.Mul(wholeWei, weiPerEth)

	if frac == "" {
		return wholeWei, nil
	}
	// Pad the fractional part to 18 digits so "05" means 0.05, not 5 wei.
	fracWei, ok := new(big.Int).SetString(frac+strings.Repeat("0", ethDecimals-len(frac)), 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount: %s", s)
	}
	return wholeWei.Add(wholeWei, fracWei), nil
}

// WeiToDisplay converts a wei amount to a float64 ether value. Display only;
// never feed the result back into a transaction.
func WeiToDisplay(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), new(big.Float).SetInt(weiPerEth)).Float64()
	return f
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
