package engine

// Color 单个 RGBA 像素，四个 8 位通道；A 为 0–255 不透明度
type Color struct {
	R, G, B, A uint8
}

// Blend 定点混合规则（与现有客户端逐字节兼容）：
// out = (dst*a1*(255-a2) + src*a2*255) >> 16
// 注意：>>16 相当于除以 65536 而非 255²，结果略偏暗，保持原样不要“修正”
func Blend(dst, src, a1, a2 uint8) uint8 {
	d, s := uint32(dst), uint32(src)
	x, y := uint32(a1), uint32(a2)
	return uint8((d*x*(0xff-y) + s*y*0xff) >> 16)
}
