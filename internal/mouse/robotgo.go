package mouse

import (
	"github.com/go-vgo/robotgo"
)

// Robotgo drives the real cursor via the OS-level robotgo bindings.
type Robotgo struct{}

func NewRobotgo() *Robotgo {
	return &Robotgo{}
}

func (r *Robotgo) Move(x, y int) {
	robotgo.Move(x, y)
}

func (r *Robotgo) Click() {
	robotgo.Click("left", false)
}

func (r *Robotgo) Position() (int, int) {
	return robotgo.Location()
}

func (r *Robotgo) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}
