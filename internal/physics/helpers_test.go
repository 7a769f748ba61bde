package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const tol = 1e-4

func vec(x, y, z float32) rl.Vector3 {
	return rl.Vector3{X: x, Y: y, Z: z}
}

// floor returns a 20x1x20 static box whose top face sits at height top.
func floor(top float32) Body {
	return NewStaticBox(vec(0, top-0.5, 0), vec(20, 1, 20), 1)
}
