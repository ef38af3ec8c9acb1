// Package game implements the hidden-group sorting engine: a fixed universe
// of cards, each secretly assigned to one of a number of equally sized
// categories, sorted into piles by trial and error.
//
// The package splits into four pieces. The state engine (Apply) is a pure
// transition function over State; it assumes its preconditions were cleared by
// the validation gate and no-ops on invalid references. The gate
// (CategoryOfPile, CanAcceptCard, WouldComplete) answers yes/no questions
// without touching state. The query layer derives read-only views from a
// snapshot. Session composes all three into the two "try" operations a
// presentation layer drives the game with, counting mistakes and publishing
// events along the way.
package game
