package graphic

// PageCount is the number of controller pages the bitmap splits into. Each
// page is eight adjacent columns over the full height.
const PageCount = Width / 8

// PageWriter accepts one serialized page at a time. data is reused between
// calls.
type PageWriter interface {
	WritePage(page int, data []byte) error
}

// Page packs the columns of page p into dst, one byte per row with bit k
// holding column 8p+k. dst must hold Height bytes.
func (b *Bitmap) Page(p int, dst []byte) {
	x0 := p * 8
	for y := 0; y < Height; y++ {
		var v byte
		for k := 0; k < 8; k++ {
			if b.cells[y][x0+k] {
				v |= 1 << k
			}
		}
		dst[y] = v
	}
}

// Serialize writes every page in order. It stops at the first failing page
// and returns that error untouched; callers retry by serializing again.
func (b *Bitmap) Serialize(w PageWriter) error {
	var buf [Height]byte
	for p := 0; p < PageCount; p++ {
		b.Page(p, buf[:])
		if err := w.WritePage(p, buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// SetPage is the inverse of Page. It overwrites the columns of page p from
// data, one byte per row.
func (b *Bitmap) SetPage(p int, data []byte) {
	if p < 0 || p >= PageCount {
		return
	}

	x0 := p * 8
	for y := 0; y < Height && y < len(data); y++ {
		for k := 0; k < 8; k++ {
			b.cells[y][x0+k] = data[y]&(1<<k) != 0
		}
	}
}
