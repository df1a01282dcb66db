package netutil

import "net"

// CidrOverlap reports whether the address spaces of networks "a" and "b" overlap.
func CidrOverlap(a, b *net.IPNet) bool {
	return a.Contains(b.IP) || b.Contains(a.IP)
}

// CidrContains reports whether the whole of inner fits inside outer.
func CidrContains(outer, inner *net.IPNet) bool {
	onesOuter, _ := outer.Mask.Size()
	onesInner, _ := inner.Mask.Size()
	return outer.Contains(inner.IP) && onesOuter <= onesInner
}
