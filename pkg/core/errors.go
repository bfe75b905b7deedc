package core

import errorsmod "cosmossdk.io/errors"

// Codespace groups every registered raytracer error
const Codespace = "raytracer"

// Construction errors: raised while building scene objects, never during a render.
var (
	ErrInvalidVector   = errorsmod.Register(Codespace, 2, "invalid vector")
	ErrInvalidGeometry = errorsmod.Register(Codespace, 3, "invalid geometry")
	ErrInvalidCamera   = errorsmod.Register(Codespace, 4, "invalid camera")
	ErrInvalidLight    = errorsmod.Register(Codespace, 5, "invalid light")
	ErrInvalidMaterial = errorsmod.Register(Codespace, 6, "invalid material")
)

// Configuration errors: a render was started without a required collaborator.
var (
	ErrMissingResource = errorsmod.Register(Codespace, 10, "missing render resource")
)

// Scene description errors
var (
	ErrInvalidScene = errorsmod.Register(Codespace, 20, "invalid scene description")
	ErrUnknownScene = errorsmod.Register(Codespace, 21, "unknown scene")
)

// Output errors: encoding, saving or publishing a finished image
var (
	ErrImageOutput = errorsmod.Register(Codespace, 30, "image output failed")
)

// IsConstructionError reports whether err comes from building a scene object
func IsConstructionError(err error) bool {
	return errorsmod.IsOf(err, ErrInvalidVector, ErrInvalidGeometry, ErrInvalidCamera, ErrInvalidLight, ErrInvalidMaterial)
}
