package clockface

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"littlepomo/internal/ui/theme"
)

const (
	markerCount = 60
	dialMinSide = float32(220)
)

// dial draws the analogue face and lays out its own hands.
type dial struct {
	rim         *canvas.Circle
	face        *canvas.Circle
	markers     []*canvas.Line
	minuteHand  *canvas.Line
	secondHand  *canvas.Line
	hub         *canvas.Circle
	minuteAngle float64
	secondAngle float64
}

func newDial() *dial {
	dial := &dial{
		rim:        canvas.NewCircle(color.Transparent),
		face:       canvas.NewCircle(color.Transparent),
		minuteHand: canvas.NewLine(color.Transparent),
		secondHand: canvas.NewLine(color.Transparent),
		hub:        canvas.NewCircle(color.Transparent),
	}
	dial.minuteHand.StrokeWidth = 4
	dial.secondHand.StrokeWidth = 1.5
	for i := 0; i < markerCount; i++ {
		marker := canvas.NewLine(color.Transparent)
		marker.StrokeWidth = 1
		if i%5 == 0 {
			marker.StrokeWidth = 2.5
		}
		dial.markers = append(dial.markers, marker)
	}
	return dial
}

func (dial *dial) objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{dial.rim, dial.face}
	for _, marker := range dial.markers {
		objects = append(objects, marker)
	}
	return append(objects, dial.minuteHand, dial.secondHand, dial.hub)
}

func (dial *dial) setColors(palette theme.Palette, env theme.Environment) {
	dial.rim.FillColor = env.ClockRim
	dial.rim.StrokeColor = palette.Glow(0.35)
	dial.rim.StrokeWidth = 2
	dial.face.FillColor = env.ClockFace
	for i, marker := range dial.markers {
		marker.StrokeColor = env.TextDim
		if i%5 == 0 {
			marker.StrokeColor = env.TextMuted
		}
	}
	dial.minuteHand.StrokeColor = palette.Start
	dial.secondHand.StrokeColor = palette.End
	dial.hub.FillColor = palette.Mid
}

func (dial *dial) setAngles(minute, second float64) {
	dial.minuteAngle = minute
	dial.secondAngle = second
}

func (dial *dial) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	center := fyne.NewPos(size.Width/2, size.Height/2)
	radius := side / 2

	placeCircle(dial.rim, center, radius)
	placeCircle(dial.face, center, radius*0.92)
	placeCircle(dial.hub, center, radius*0.05)

	for i, marker := range dial.markers {
		inner := float32(0.84)
		if i%5 == 0 {
			inner = 0.78
		}
		angle := float64(i) * 6
		marker.Position1 = pointAt(center, radius*inner, angle)
		marker.Position2 = pointAt(center, radius*0.88, angle)
	}

	dial.minuteHand.Position1 = center
	dial.minuteHand.Position2 = pointAt(center, radius*0.55, dial.minuteAngle)
	dial.secondHand.Position1 = pointAt(center, -radius*0.1, dial.secondAngle)
	dial.secondHand.Position2 = pointAt(center, radius*0.78, dial.secondAngle)
}

func (dial *dial) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(dialMinSide, dialMinSide)
}

func placeCircle(circle *canvas.Circle, center fyne.Position, radius float32) {
	circle.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	circle.Resize(fyne.NewSize(radius*2, radius*2))
}

// pointAt returns the point at distance from center, degrees clockwise from
// twelve o'clock.
func pointAt(center fyne.Position, distance float32, degrees float64) fyne.Position {
	radians := degrees * math.Pi / 180
	return fyne.NewPos(
		center.X+distance*float32(math.Sin(radians)),
		center.Y-distance*float32(math.Cos(radians)),
	)
}
