// Package imagemanip manipulates images through a declarative chain of
// operations.
//
// An Image is loaded from a file or from memory, configured with fluent
// calls, and rendered by Save:
//
//	err := imagemanip.Load("photo.jpg").
//		Fit(imagemanip.FitFill, 400, 300).
//		Background("lightslategray").
//		Blur(20).
//		Quality(80).
//		Save("thumb.jpg")
//
// Every call validates its arguments immediately. The first invalid call is
// remembered, all later calls are ignored, and Save returns that error
// without touching any pixels. Err reports it earlier.
//
// # Operation Order
//
// Operations run in the order they were added, with one exception: Width,
// Height and Fit configure a single resize that always runs first. When the
// source is a JPEG and no explicit Orientation was requested, the image is
// rotated upright according to its EXIF orientation tag after that resize.
//
// # Fit Modes
//
//   - FitContain scales the image to fit inside the box, keeping its ratio
//   - FitMax does the same but never enlarges
//   - FitFill fits like FitContain and pads the rest with the background
//   - FitStretch scales to exactly the box, ignoring the ratio
//   - FitCrop covers the box and cuts the overflowing sides
//
// # Colors
//
// Background accepts CSS color keywords and 3, 6 or 8 digit hex values,
// with or without a leading '#'. In the 8 digit form the last pair is an
// alpha value; 00 means an opaque fill and anything above asks for a
// translucent background of that opacity.
//
// # Errors
//
// All failures match one of ErrInvalidManipulation, ErrFileNotFound or
// ErrCouldNotConvert with errors.Is.
package imagemanip
