// Package model defines the collaborator contract the identity map consumes
// and ships Base, a minimal default implementation of it.
//
// The identity map only needs three things from a model framework: attribute
// read access, a bulk attribute-update path, and subscription to the
// attribute-changed and removed signals. Those are captured by the Instance
// and Notifier interfaces; Model combines them. Anything beyond that, such as
// validation, persistence, or richer eventing, belongs to the framework, not
// here.
//
// Base exists so that generated types, tests, and examples have a concrete
// model to drive without pulling in a full framework. It is a mutex-guarded
// attribute bag with synchronous callbacks and a uuid client id per instance.
// Frameworks with their own model type implement Model instead and ignore
// Base entirely.
package model
