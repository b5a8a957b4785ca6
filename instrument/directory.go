package instrument

// Info is the per-instrument metadata needed to build a signable order leg:
// the on-chain asset hash and the decimal precision of sizes.
type Info struct {
	Hash         string // 0x-prefixed uint256 instrument hash
	BaseDecimals int32
}

// Directory maps human-readable instrument names (e.g. "BTC_USDT_Perp") to
// their metadata. It is built from the market-data service response and
// supplied to the signing core, which never fetches it itself.
type Directory map[string]Info

// Lookup resolves an instrument name.
func (d Directory) Lookup(name string) (Info, bool) {
	info, ok := d[name]
	return info, ok
}
