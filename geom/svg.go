package geom

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

type svgParser struct {
	path []byte
	i    int
	err  error
}

func (p *svgParser) num() float64 {
	if p.err != nil {
		return 0.0
	}
	p.i += skipCommaWhitespace(p.path[p.i:])
	f, n := strconv.ParseFloat(p.path[p.i:])
	if n == 0 {
		p.err = fmt.Errorf("bad number at position %d in path data", p.i)
		return 0.0
	}
	p.i += n
	return f
}

func (p *svgParser) flag() bool {
	if p.err != nil {
		return false
	}
	p.i += skipCommaWhitespace(p.path[p.i:])
	if p.i < len(p.path) && (p.path[p.i] == '0' || p.path[p.i] == '1') {
		p.i++
		return p.path[p.i-1] == '1'
	}
	p.err = fmt.Errorf("bad flag at position %d in path data", p.i)
	return false
}

// ParseSVG parses SVG path data, such as "M0 0L1 0L0.5 1z". Elliptical arcs are converted to cubic Béziers.
func ParseSVG[S Space](data string) (Path[S], error) {
	b := Builder[S]{}
	p := &svgParser{path: []byte(data)}

	var prevCmd byte
	cp := Point[S]{} // last control point for smooth curves
	for {
		p.i += skipCommaWhitespace(p.path[p.i:])
		if len(p.path) <= p.i {
			break
		}
		cmd := prevCmd
		if c := p.path[p.i]; 'A' <= c && c != 'e' && c != 'E' {
			cmd = c
			p.i++
		} else if prevCmd == 0 {
			return Path[S]{}, fmt.Errorf("path data must start with a command")
		}
		pos := b.Pos()
		rel := 'a' <= cmd
		abs := func(x, y float64) (float64, float64) {
			if rel {
				return x + pos.X, y + pos.Y
			}
			return x, y
		}

		switch cmd {
		case 'M', 'm':
			x, y := abs(p.num(), p.num())
			b.MoveTo(x, y)
			cmd = cmd - 'M' + 'L' // subsequent pairs are lines
		case 'Z', 'z':
			b.Close()
		case 'L', 'l':
			b.LineTo(abs(p.num(), p.num()))
		case 'H', 'h':
			x := p.num()
			if rel {
				x += pos.X
			}
			b.LineTo(x, pos.Y)
		case 'V', 'v':
			y := p.num()
			if rel {
				y += pos.Y
			}
			b.LineTo(pos.X, y)
		case 'C', 'c':
			x1, y1 := abs(p.num(), p.num())
			x2, y2 := abs(p.num(), p.num())
			x, y := abs(p.num(), p.num())
			b.CubeTo(x1, y1, x2, y2, x, y)
			cp = Point[S]{x2, y2}
		case 'S', 's':
			x1, y1 := pos.X, pos.Y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				x1, y1 = 2.0*pos.X-cp.X, 2.0*pos.Y-cp.Y
			}
			x2, y2 := abs(p.num(), p.num())
			x, y := abs(p.num(), p.num())
			b.CubeTo(x1, y1, x2, y2, x, y)
			cp = Point[S]{x2, y2}
		case 'Q', 'q':
			x1, y1 := abs(p.num(), p.num())
			x, y := abs(p.num(), p.num())
			b.QuadTo(x1, y1, x, y)
			cp = Point[S]{x1, y1}
		case 'T', 't':
			x1, y1 := pos.X, pos.Y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				x1, y1 = 2.0*pos.X-cp.X, 2.0*pos.Y-cp.Y
			}
			x, y := abs(p.num(), p.num())
			b.QuadTo(x1, y1, x, y)
			cp = Point[S]{x1, y1}
		case 'A', 'a':
			rx, ry := math.Abs(p.num()), math.Abs(p.num())
			rot := p.num()
			large, sweep := p.flag(), p.flag()
			x, y := abs(p.num(), p.num())
			if p.err == nil {
				arcTo(&b, pos, rx, ry, rot, large, sweep, Point[S]{x, y})
			}
		default:
			return Path[S]{}, fmt.Errorf("unknown path command '%c'", cmd)
		}
		if p.err != nil {
			return Path[S]{}, p.err
		}
		prevCmd = cmd
	}
	return b.Path(), nil
}

// MustParseSVG is like ParseSVG but panics on error, for path literals.
func MustParseSVG[S Space](data string) Path[S] {
	p, err := ParseSVG[S](data)
	if err != nil {
		panic(err)
	}
	return p
}

// arcTo appends an SVG endpoint-parameterized elliptical arc, rot in degrees.
// see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func arcTo[S Space](b *Builder[S], start Point[S], rx, ry, rot float64, large, sweep bool, end Point[S]) {
	if start.Equals(end) {
		return
	} else if rx == 0.0 || ry == 0.0 {
		b.LineTo(end.X, end.Y)
		return
	}

	sinrot, cosrot := math.Sincos(rot * math.Pi / 180.0)
	x1p := cosrot*(start.X-end.X)/2.0 + sinrot*(start.Y-end.Y)/2.0
	y1p := -sinrot*(start.X-end.X)/2.0 + cosrot*(start.Y-end.Y)/2.0

	// scale up radii that are too small
	if lambda := x1p*x1p/rx/rx + y1p*y1p/ry/ry; 1.0 < lambda {
		rx *= math.Sqrt(lambda)
		ry *= math.Sqrt(lambda)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	coef := math.Sqrt(math.Max(sq, 0.0))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cosrot*cxp - sinrot*cyp + (start.X+end.X)/2.0
	cy := sinrot*cxp + cosrot*cyp + (start.Y+end.Y)/2.0

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := -(x1p+cxp)/rx, -(y1p+cyp)/ry
	theta := math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && 0.0 < delta {
		delta -= 2.0 * math.Pi
	} else if sweep && delta < 0.0 {
		delta += 2.0 * math.Pi
	}

	// build the arc around the origin unrotated, then place it
	arc := Builder[S]{}
	arc.ArcTo(0.0, 0.0, rx, ry, theta, theta+delta)
	m := Identity.Translate(cx, cy).Rotate(rot)
	arc.Path().Transform(m).Segments(func(seg Segment[S]) bool {
		if seg.Cmd == CubeTo {
			b.CubeTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		}
		return true
	})
}
