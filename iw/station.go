// Copyright (c) tkc17.

package iw

// Station holds the parsed statistics of a single station block
// from the iw station dump output.
type Station struct {
	// MAC is the station MAC address from the block header line.
	MAC string
	// Stats maps a statistic name, e.g "rx bytes" or "signal",
	// to its verbatim value, e.g "27240" or "-62 [-62, -71] dBm".
	Stats map[string]string
}

// Value returns the verbatim value of the statistic.
// Returns empty string if the statistic is absent.
func (s Station) Value(key string) string {
	return s.Stats[key]
}

// Numeric returns the leading numeric part of the statistic value.
// Units and extra detail after the number are dropped, so
// "-62 [-62, -71] dBm" yields -62 and "8 ms" yields 8.
func (s Station) Numeric(key string) (float64, bool) {
	return LeadingFloat(s.Stats[key])
}

// Flag returns the boolean value of a yes/no statistic.
func (s Station) Flag(key string) (bool, bool) {
	return FlagValue(s.Stats[key])
}

// SignalDBM returns the station signal strength in dBm.
func (s Station) SignalDBM() (float64, bool) {
	return s.Numeric("signal")
}

// SignalAvgDBM returns the average signal strength in dBm.
func (s Station) SignalAvgDBM() (float64, bool) {
	return s.Numeric("signal avg")
}

// TxBitrateMbps returns the transmit bitrate in MBit/s.
func (s Station) TxBitrateMbps() (float64, bool) {
	return s.Numeric("tx bitrate")
}

// RxBitrateMbps returns the receive bitrate in MBit/s.
func (s Station) RxBitrateMbps() (float64, bool) {
	return s.Numeric("rx bitrate")
}

// ConnectedSeconds returns the station connected time in seconds.
func (s Station) ConnectedSeconds() (float64, bool) {
	return s.Numeric("connected time")
}

// InactiveMillis returns the station inactive time in milliseconds.
func (s Station) InactiveMillis() (float64, bool) {
	return s.Numeric("inactive time")
}
