/*
Package custody defines all common interfaces to weave together the various
subpackages of a multi party custody engine, as well as implementations of
some of the simpler components (when interfaces would be too much overhead).

We pass context through context.Context between app, middleware, and
handlers. To do so, custody defines some common keys to store info, such as
the calling address and the logger. There should exist two functions for
every XYZ of type T that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package custody
