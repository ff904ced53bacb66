// Package store defines the storage handle the configuration loader
// publishes under the DB setting. The loader only opens the connection;
// indexers and search components read and write through the handle.
package store
