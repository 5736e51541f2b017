// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// remap.go - 27C256 physical/logical address remapping
// Dual-licensed under MIT and Apache 2.0

package capsule

// swapHalves exchanges the two halves of buf in place. On 256 kbit capsules
// the 27C256 address wiring swaps the 16 KiB halves of the physical image
// relative to the logical layout; the same swap converts in both directions.
func swapHalves(buf []byte) {
	half := len(buf) / 2
	tmp := make([]byte, half)
	copy(tmp, buf[:half])
	copy(buf[:half], buf[half:2*half])
	copy(buf[half:2*half], tmp)
}
