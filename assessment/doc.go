// Package assessment holds the state and rules of a space assessment: the
// growing context, the form the user fills in, how the final prompt is
// composed, and the submission of the photo to a Transformer.
//
// Nothing here touches the terminal; the app package renders Form values and
// replaces them on every edit.
package assessment
