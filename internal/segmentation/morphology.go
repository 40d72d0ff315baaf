package segmentation

// Binary morphology on masks. All operations use 4-connectivity for
// connected-component reasoning and a 3x3 square structuring element for
// dilation and erosion.

// neighbors4 lists the 4-connected neighbor offsets.
var neighbors4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Dilate grows foreground regions by iterations passes of a 3x3 square
// structuring element.
func Dilate(m *Mask, iterations int) *Mask {
	out := m.Clone()
	for i := 0; i < iterations; i++ {
		next := NewMask(out.Width, out.Height)
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				if out.Bits[y*out.Width+x] {
					next.Bits[y*out.Width+x] = true
					continue
				}
				for ky := -1; ky <= 1 && !next.Bits[y*out.Width+x]; ky++ {
					for kx := -1; kx <= 1; kx++ {
						if out.At(x+kx, y+ky) {
							next.Bits[y*out.Width+x] = true
							break
						}
					}
				}
			}
		}
		out = next
	}
	return out
}

// Erode shrinks foreground regions by iterations passes of a 3x3 square
// structuring element. Pixels beyond the image border count as background,
// so foreground touching the border erodes inward from the border too.
func Erode(m *Mask, iterations int) *Mask {
	out := m.Clone()
	for i := 0; i < iterations; i++ {
		next := NewMask(out.Width, out.Height)
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				if !out.Bits[y*out.Width+x] {
					continue
				}
				keep := true
				for ky := -1; ky <= 1 && keep; ky++ {
					for kx := -1; kx <= 1; kx++ {
						if !out.At(x+kx, y+ky) {
							keep = false
							break
						}
					}
				}
				next.Bits[y*out.Width+x] = keep
			}
		}
		out = next
	}
	return out
}

// FillHoles fills enclosed background regions within the foreground.
//
// A hole is a 4-connected background component that does not touch the image
// border. The implementation flood-fills background from every border pixel;
// whatever background remains unreached is enclosed and becomes foreground.
func FillHoles(m *Mask) *Mask {
	w, h := m.Width, m.Height
	outside := NewMask(w, h)

	stack := make([][2]int, 0, 2*(w+h))
	push := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		if m.Bits[y*w+x] || outside.Bits[y*w+x] {
			return
		}
		outside.Bits[y*w+x] = true
		stack = append(stack, [2]int{x, y})
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbors4 {
			push(p[0]+d[0], p[1]+d[1])
		}
	}

	filled := NewMask(w, h)
	for i := range filled.Bits {
		filled.Bits[i] = m.Bits[i] || !outside.Bits[i]
	}
	return filled
}

// RemoveSmallObjects drops 4-connected foreground components with an area
// below minArea pixels.
func RemoveSmallObjects(m *Mask, minArea int) *Mask {
	if minArea <= 1 {
		return m.Clone()
	}

	w, h := m.Width, m.Height
	out := NewMask(w, h)
	visited := make([]bool, w*h)
	stack := make([][2]int, 0, 64)
	component := make([][2]int, 0, 256)

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			idx := sy*w + sx
			if !m.Bits[idx] || visited[idx] {
				continue
			}

			// Collect one component.
			component := component[:0]
			visited[idx] = true
			stack = append(stack[:0], [2]int{sx, sy})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				component = append(component, p)
				for _, d := range neighbors4 {
					nx, ny := p[0]+d[0], p[1]+d[1]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nidx := ny*w + nx
					if m.Bits[nidx] && !visited[nidx] {
						visited[nidx] = true
						stack = append(stack, [2]int{nx, ny})
					}
				}
			}

			if len(component) >= minArea {
				for _, p := range component {
					out.Bits[p[1]*w+p[0]] = true
				}
			}
		}
	}
	return out
}
