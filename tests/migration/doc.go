/*
Package migration provides framework to test migration of the fund smart contracts.

Smart contracts store sensitive fund accounting data. The contracts are updated
on the fly, so data migration must be performed accurately, without backward
compatibility loss. The package provides services of Neo blockchain and
particular contract needed for testing. Test blockchain environment can be based
on "real" data from the remote blockchain instances.
*/
package migration
